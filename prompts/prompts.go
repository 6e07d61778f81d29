package prompts

const TamagotchiWelcome = `Welcome to AI Tamagotchi! Teach your AI by chatting with it. Type 'exit' to quit or 'status' to see your AI's stats. Prefix messages with 'teach:' to award extra XP.
`

const TamagotchiStatus = "Level: %d, XP: %d/%d\n"

const TamagotchiTaught = "You taught the AI something new! +%d XP\n"

const TamagotchiLevelUp = "🎉 Your AI has reached level %d! 🎉\n"

const TamagotchiReply = "AI: %s\n"

const TamagotchiGoodbye = "Goodbye! Your progress has been saved.\n"

// FallbackReply stands in when the replier fails.
const FallbackReply = "I'm having trouble thinking right now."

const KBCWelcome = `Welcome to the KBC RPG prototype!
You will explore a small world, gather knowledge (XP), and unlock new areas.
Type 'help' to see available commands.
`

const KBCHelp = `Available commands:
  north/south/east/west  - Move in the indicated direction
  ask                    - Consult the Oracle (only at the Oracle)
  study                  - Study at the Library (requires sufficient total XP)
  status                 - Show your current position, age and XP
  wait                   - Let time pass (no XP)
  help                   - Show this help message
  quit                   - Exit the game
`

const KBCLocation = "\nYou are at %s (position %d,%d).\n"

const KBCStatus = `Total XP: %d  (Current session XP: %d)
Position: %d,%d
Age (ticks): %d
`

const KBCEdge = "You cannot move further %s.\n"

const KBCWait = "You sit and let time pass… your XP does not increase.\n"

const KBCUnknown = "I don't understand that command. Type 'help' to see what you can do.\n"

const KBCGoodbye = "Thanks for playing!\n"

const OracleQuestion = "Oracle: %s\n"

const OracleAnswerPrompt = "Your answer: "

const OracleCorrect = "Oracle: Correct! Your knowledge grows.\n"

const OracleWrong = "Oracle: The correct answer was '%s'.\n"

const LibraryLocked = "A locked door blocks your way. You need at least %d total XP to enter the Library.\n"

const LibraryStudy = "You immerse yourself in ancient manuscripts and learn a great deal.\n"

const XPReceived = "You received %d XP.\n"
