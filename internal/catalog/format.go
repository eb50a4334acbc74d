package catalog

import (
	"fmt"
	"strings"
)

// WelcomeMessage opens the services menu for new conversations.
const WelcomeMessage = "Hi 👋 Welcome!\n" +
	"I'm Esther's virtual assistant.\n\n" +
	"I'll help you find the perfect service for your needs. Let's get started! 🚀"

// BookingLink is the discovery-call scheduling link shared on completion.
const BookingLink = "https://calendar.google.com/calendar/r/eventedit?" +
	"text=Discovery+Call&details=Please+book+a+30-minute+discovery+call+with+Esther&sf=true"

// FormatMenu renders the numbered services menu.
func FormatMenu(c *Catalog) string {
	var b strings.Builder
	b.WriteString(WelcomeMessage)
	b.WriteString("\n\n📋 *Available Services:*\n\n")
	for _, s := range c.All() {
		fmt.Fprintf(&b, "%s. *%s*\n   %s\n\n", s.ID, s.DisplayName, s.Description)
	}
	b.WriteString("💡 Reply with the *number* or *service name* to learn more.\n" +
		"Type *MENU* anytime to return here.")
	return b.String()
}

// FormatDetail renders the full description of one service, ending with the
// YES/NO confirmation prompt the service-detail state expects.
func FormatDetail(s Service) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✨ *%s*\n\n%s\n\n🎯 *What's Included:*\n", s.DisplayName, s.DetailedDescription)
	for i, d := range s.Deliverables {
		if i == 6 {
			break
		}
		fmt.Fprintf(&b, "• %s\n", d)
	}
	fmt.Fprintf(&b, "\n⏰ *Typical Hours:* %d-%d hours/week\n", s.HoursRange[0], s.HoursRange[1])
	fmt.Fprintf(&b, "💰 *Pricing Tier:* %s\n", titleCase(string(s.Tier)))
	if len(s.RequiredTools) > 0 {
		tools := s.RequiredTools
		if len(tools) > 3 {
			tools = tools[:3]
		}
		fmt.Fprintf(&b, "\n🛠️ *Tools Used:* %s\n", strings.Join(tools, ", "))
	}
	if s.RequiresConsult {
		b.WriteString("\n⚠️ *Note:* This service requires a consultation call to customize.\n")
	}
	b.WriteString("\nReply *YES* to proceed, or *NO* to see other options.")
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatRecommendations renders up to three recommended services.
func FormatRecommendations(services []Service, businessType string) string {
	if len(services) == 0 {
		return "Based on your needs, all our services could be a great fit! 🎯"
	}
	var b strings.Builder
	b.WriteString("✨ *Recommended for you:*\n\n")
	for i, s := range services {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "%d. *%s*\n   %s\n\n", i+1, s.DisplayName, s.Description)
	}
	if businessType != "" {
		fmt.Fprintf(&b, "💡 These services are popular with %s businesses!\n\n", businessType)
	}
	b.WriteString("Reply with a number to learn more, or type *MENU* to see all services.")
	return b.String()
}
