package chatbot

import "health-records-portal/internal/domain/users"

const doctorHelp = `Medical Assistant Chatbot Commands:

Patient Search:
• "Show all patients" - List all accessible patients
• "Find patient ID [number]" - Find specific patient
• "Show patients with [disease]" - Filter by disease

Statistics:
• "How many patients?" - Total patient count
• "Count patients with [disease]" - Disease-specific count
• "Total reports" - Overall statistics

Examples:
• "Show patients with cancer"
• "Find patient ID 102"
• "How many patients with diabetes?"
• "List all patients"

Just type your question naturally!`

const patientHelp = `Health Assistant Commands:

Your Records:
• "My reports" - Your most recent uploads
• "Show my records" - Summary of your health record
• "Total reports" - Statistics about your reports

Access:
• "Who has access?" - Doctors you granted access to

Anything else is answered by the assistant. It is not a substitute for your doctor.`

const suggestions = `I can help you find patients and analyze medical data. Try asking:

• 'Show all patients'
• 'Find patient ID 123'
• 'Show patients with cancer'
• 'How many patients do I have?'
• 'Count patients with diabetes'

What would you like to know?`

func helpMessage(role users.Role) string {
	if role == users.RolePatient {
		return patientHelp
	}
	return doctorHelp
}
