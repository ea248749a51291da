package assistant

import (
	"strings"
	"time"
)

// Greeting opens every new session. The assistant always asks for the name
// first; the system instruction keeps the rest of the order fixed.
const Greeting = "Hello! I'm Calendrix AI, your smart scheduling assistant. Let's get your meeting booked! What's your name?"

const systemInstruction = `You are Calendrix AI, a scheduling assistant.
Collect ONE AT A TIME: 1) name 2) date 3) time range 4) meeting title.
Ask ONE question per message (max 35 words).
For time, ask: "What time? (e.g., 4 PM to 6 PM or 4:00-6:00)"
After all 4 collected, confirm: "Perfect! [TITLE] for [NAME] on [DATE] from [START] to [END]. Create?"
Only after user confirms (yes/ok/sure/correct), output:
` + "```json" + `
{"name":"NAME","date":"YYYY-MM-DD","start_time":"HH:MM","end_time":"HH:MM","title":"TITLE","confirmed":true}
` + "```" + `
Output that JSON block exactly once, never earlier in the conversation.
Parse dates: today={TODAY}, tomorrow={TOMORROW}. Times: 2pm=14:00, 9am=09:00.
Today={TODAY}. Tomorrow={TOMORROW}.`

// SystemInstruction returns the fixed instruction with date anchors resolved
// against the given reference time, so the model can normalize "tomorrow" and
// weekday phrases itself.
func SystemInstruction(now time.Time) string {
	today := now.Format("Monday January 02 2006")
	tomorrow := now.AddDate(0, 0, 1).Format("Monday January 02 2006")
	s := strings.ReplaceAll(systemInstruction, "{TODAY}", today)
	return strings.ReplaceAll(s, "{TOMORROW}", tomorrow)
}
