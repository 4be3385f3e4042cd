package assistant

import (
	"fmt"
	"strings"

	"github.com/wolfman30/doctor-finder/internal/doctors"
)

// NoDataMessage must appear in every reply for a search that found nothing.
const NoDataMessage = "System will update in few days."

const notProvided = "Not provided"

const systemInstruction = `You are a friendly and professional medical assistant.

You help users find suitable doctors in Islamabad and Lahore, Pakistan.

Rules:
1. Be conversational, warm and concise.
2. Only recommend doctors that are listed in the current message. Never invent or guess doctor names, fees, experience, reviews, contact details or any other doctor information.
3. If a detail such as clinic, phone or timings is not listed, say it is available at the clinic.
4. Vary the presentation of your answers and explain briefly why each doctor fits the request.
5. If no doctors are listed, say "System will update in few days." clearly and suggest alternatives.
6. You do not diagnose. For anything urgent, advise the user to seek emergency care.`

const emergencyMessage = `**MEDICAL EMERGENCY DETECTED**

**PLEASE SEEK IMMEDIATE MEDICAL ATTENTION:**

- Call emergency services (Rescue 1122)
- Go to the nearest emergency room
- Contact your nearest hospital immediately

**For Islamabad:**
- PIMS Hospital Emergency: 051-9261170
- Shifa International Hospital: 051-8463100

**For Lahore:**
- Jinnah Hospital Emergency: 042-99231536
- Shaukat Khanum Hospital: 042-35905000

Your life and safety are the top priority. Please seek professional medical help immediately before considering any doctor consultations.`

const clarificationReply = `I'd be happy to help you find the right doctor! To give you the best recommendations, could you please:

1. **Describe your medical concern or symptoms**, or
2. **Tell me which specialist you need** (Psychiatrist, Dermatologist, Neurologist, Gynecologist or Urologist)
3. **Mention your preferred city** (Islamabad or Lahore)

**Examples:**
- "I need a psychiatrist in Lahore for anxiety"
- "Best dermatologist in Islamabad"
- "I have severe headaches and dizziness"

How can I help you today?`

const unsupportedCityReply = `I'm sorry, but our database currently only covers doctors in **Islamabad** and **Lahore**.

We are working on expanding our coverage to other cities across Pakistan.

Would you like me to recommend doctors in:
1. **Islamabad**
2. **Lahore**

Please let me know your medical concern and preferred city from the options above!`

func generalPrompt(utterance string) string {
	return fmt.Sprintf(`User said: %q

This is a casual message or a general question. Respond naturally and helpfully.
If they are greeting you, greet them back warmly.
If they are asking what you do, explain that you help find doctors in Islamabad and Lahore.
If it is unclear, ask how you can help them find a doctor.
Be friendly, concise and conversational.`, utterance)
}

func unsupportedCityPrompt(utterance string) string {
	return fmt.Sprintf(`User asked: %q

They mentioned a city we don't support yet. We only have doctors in Islamabad and Lahore.
Politely explain this and ask if they'd like help finding a doctor in Islamabad or Lahore instead.`, utterance)
}

func doctorsPrompt(utterance string, rows []doctors.Doctor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User asked: %q\n\nDoctors from our database:\n", utterance)
	for i, d := range rows {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, d.Name)
		fmt.Fprintf(&b, "   - %s in %s\n", d.Specialty, d.City)
		fmt.Fprintf(&b, "   - Specializations: %s\n", d.Specializations)
		if d.Qualifications != "" {
			fmt.Fprintf(&b, "   - Qualifications: %s\n", d.Qualifications)
		}
		fmt.Fprintf(&b, "   - Experience: %s\n", d.Experience)
		fmt.Fprintf(&b, "   - Reviews: %d\n", d.Reviews)
		fmt.Fprintf(&b, "   - Fee: Rs.%d\n", d.Fee)
	}
	b.WriteString(`
Recommend the best of these doctors for the request. Acknowledge the request, highlight name, specialty, experience, reviews and fee, and say why each is a good fit.
Only mention doctors from the list above and use no other doctor information.`)
	return b.String()
}

func noDataPrompt(utterance string, intent IntentResult) string {
	return fmt.Sprintf(`User asked: %q

We don't have any %s%s in our database yet.

Respond empathetically and briefly. Include:
1. The exact sentence: %q
2. An apology for not having what they need
3. A suggestion to try a different specialty or city (Islamabad or Lahore)`, utterance, pluralSpecialty(intent.Specialty), cityPhrase(intent.City), NoDataMessage)
}

func noDataReply(intent IntentResult) string {
	return fmt.Sprintf("I'm sorry, but I couldn't find any %s%s in our current database.\n\n**%s**\n\n"+
		"We're continuously adding more doctors. Would you like to try a different specialty or city (Islamabad/Lahore)?",
		pluralSpecialty(intent.Specialty), cityPhrase(intent.City), NoDataMessage)
}

// ensureNoDataMessage prepends the no-data sentence when a generated reply
// left it out.
func ensureNoDataMessage(text string) string {
	if strings.Contains(text, NoDataMessage) {
		return text
	}
	return NoDataMessage + "\n\n" + text
}

// listingReply formats the retrieved rows without the LLM.
func listingReply(intent IntentResult, rows []doctors.Doctor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your request, here are the top recommended %s%s:\n\n", pluralSpecialty(intent.Specialty), cityPhrase(intent.City))
	for i, d := range rows {
		fmt.Fprintf(&b, "**Doctor #%d: %s**\n", i+1, d.Name)
		fmt.Fprintf(&b, "- **Specialty:** %s\n", d.Specialty)
		fmt.Fprintf(&b, "- **City / Area:** %s\n", withArea(d))
		fmt.Fprintf(&b, "- **Specializations:** %s\n", orNotProvided(d.Specializations))
		fmt.Fprintf(&b, "- **Qualifications:** %s\n", orNotProvided(d.Qualifications))
		fmt.Fprintf(&b, "- **Experience:** %s\n", orNotProvided(d.Experience))
		fmt.Fprintf(&b, "- **Reviews:** %d\n", d.Reviews)
		fmt.Fprintf(&b, "- **Fee:** Rs.%d\n", d.Fee)
		fmt.Fprintf(&b, "- **Clinic / Hospital:** %s\n", optional(d.HospitalClinic))
		fmt.Fprintf(&b, "- **Contact:** %s\n", optional(d.Phone))
		fmt.Fprintf(&b, "- **Timings:** %s\n", optional(d.Timings))
		fmt.Fprintf(&b, "- **Profile Link:** %s\n\n", optional(d.ProfileLink))
	}
	return strings.TrimRight(b.String(), "\n")
}

func pluralSpecialty(specialty string) string {
	if specialty == "" {
		return "doctors"
	}
	return specialty + "s"
}

func cityPhrase(city string) string {
	if city == "" {
		return ""
	}
	return " in " + city
}

func withArea(d doctors.Doctor) string {
	if d.Area != nil && strings.TrimSpace(*d.Area) != "" {
		return d.City + " / " + *d.Area
	}
	return d.City
}

func optional(v *string) string {
	if v == nil {
		return notProvided
	}
	return orNotProvided(*v)
}

func orNotProvided(v string) string {
	if strings.TrimSpace(v) == "" {
		return notProvided
	}
	return v
}
