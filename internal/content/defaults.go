package content

// Compiled-in content keeps the game playable with no content directory.
// A content dir overlays these defaults tier by tier; see Load.

const defaultWordsYAML = `words:
  tiers:
    1:
      - ink
      - cat
      - sun
      - owl
      - key
      - arc
      - elm
      - fog
      - rat
      - wax
    2:
      - rune
      - page
      - moth
      - fern
      - grit
      - veil
      - husk
      - lamp
      - bolt
      - tome
    3:
      - quill
      - glyph
      - ember
      - shard
      - crypt
      - spore
      - brine
      - latch
      - wraith
      - sigil
    4:
      - cipher
      - scroll
      - quiver
      - marrow
      - lament
      - tendon
      - hollow
      - shroud
      - vellum
      - talons
    5:
      - archive
      - lexicon
      - epitaph
      - obelisk
      - vestige
      - fissure
      - sanctum
      - phantom
      - wrought
      - parchment
    6:
      - grimoire
      - threnody
      - basilisk
      - obsidian
      - aphorism
      - runework
      - funereal
      - tenebrous
      - moribund
      - revenant
    7:
      - scrivener
      - labyrinth
      - alabaster
      - threshold
      - penumbral
      - cadaverous
      - desiccated
      - palimpsest
      - chthonic
      - susurrus
    8:
      - apocryphal
      - manuscript
      - sepulchral
      - vermillion
      - pestilence
      - crepuscular
      - obfuscation
      - tessellated
      - anathematic
      - vituperate
    9:
      - calligraphy
      - dissolution
      - incunabula
      - necromantic
      - exsanguinate
      - antediluvian
      - eschatology
      - bibliomancy
      - incantatory
      - abecedarian
    10:
      - sesquipedalian
      - obsolescence
      - transliterate
      - unpronounceable
      - circumlocution
      - epistolography
      - tintinnabulation
      - verisimilitude
      - grandiloquence
      - onomatopoeia
  themes:
    machinery:
      - gear
      - piston
      - flywheel
      - ratchet
      - sprocket
      - camshaft
      - furnace
      - rivet
      - boiler
      - clockwork
    shadows:
      - umbra
      - gloom
      - dusk
      - eclipse
      - twilight
      - murk
      - shade
      - nightfall
      - silhouette
      - penumbra
    silence:
      - hush
      - mute
      - still
      - quiet
      - soundless
      - muffled
      - wordless
      - voiceless
      - breathless
      - noiseless
    eldritch:
      - abyss
      - cosmic
      - tentacle
      - unspeakable
      - cyclopean
      - eldritch
      - blasphemous
      - amorphous
      - antiquarian
      - indescribable
`

const defaultSentencesYAML = `sentences:
  tiers:
    1:
      - the ink runs dry
      - a page turns over
      - words hold the line
      - the quill is quick
    2:
      - every letter lands where it must
      - the archive hums with old voices
      - type fast and keep your footing
      - a missed key is a missed parry
    3:
      - the scrivener reads your hands before you move
      - each word you finish is a wound it feels
      - the margins of this floor are written in rust
      - keep the rhythm steady and the shield will hold
    4:
      - somewhere below the stacks a binding comes undone
      - what the golem guards was never meant to be read
      - the corridor narrows and the letters grow teeth
      - your combo is a candle and the draft is rising
    5:
      - the warden of silence collects every syllable you drop
      - ink pools in the grooves where older duelists knelt
      - a perfect word rings through the stacks like struck glass
      - the tower keeps its own ledger of your mistakes
    6:
      - beneath the lexicon the unspeller gnaws at the alphabet
      - every floor rearranges its vocabulary while you climb
      - the shade between the shelves answers only to clean typing
      - hesitate on a hard word and the timer will collect its due
    7:
      - the deeper stacks trade in sentences that resist the tongue
      - an elite foe reads your rhythm and sharpens itself against it
      - the catalogue of the tower is written in a hand that bites
      - speed without accuracy is a blade swung with closed eyes
    8:
      - what survives of the first librarians is mostly appetite now
      - the unspeller unpicks a letter from your name with every turn
      - sentences on this floor are long because the dark is patient
      - a flawless streak burns bright enough to read the ceiling by
    9:
      - the tower was a dictionary once and it remembers being complete
      - every keystroke is a small treaty between your hands and the dark
      - the boss of this floor has been sharpening one sentence for years
      - type the impossible words cleanly and the architecture takes notice
    10:
      - whatever waits at the top of the tower has already read your ending
      - the final floors are written in the language the alphabet fled from
      - a grand duel is just spelling performed at the edge of a long fall
      - finish this sentence without a single error and the silence will bow
`
