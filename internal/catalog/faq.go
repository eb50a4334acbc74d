package catalog

import (
	"sort"
	"strings"
)

// FAQ is a single frequently-asked-question entry with its matching keywords.
type FAQ struct {
	ID       string
	Question string
	Answer   string
	Keywords []string
	Priority int // higher priority wins when multiple entries match
}

// FAQTable answers keyword lookups against the static FAQ set.
type FAQTable struct {
	faqs []FAQ
}

// DefaultFAQs returns the built-in FAQ table, ordered by priority.
func DefaultFAQs() *FAQTable {
	faqs := make([]FAQ, len(builtinFAQs))
	copy(faqs, builtinFAQs)
	sort.SliceStable(faqs, func(i, j int) bool { return faqs[i].Priority > faqs[j].Priority })
	return &FAQTable{faqs: faqs}
}

// AnswerFor returns the answer of the highest-priority FAQ whose any keyword
// is contained in the message. The message is matched case-insensitively.
func (t *FAQTable) AnswerFor(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, faq := range t.faqs {
		for _, kw := range faq.Keywords {
			if strings.Contains(lower, kw) {
				return faq.Answer, true
			}
		}
	}
	return "", false
}

// All returns every FAQ ordered by priority, highest first.
func (t *FAQTable) All() []FAQ {
	out := make([]FAQ, len(t.faqs))
	copy(out, t.faqs)
	return out
}

var builtinFAQs = []FAQ{
	{
		ID:       "pricing",
		Question: "How much does your service cost?",
		Answer: "💰 *Pricing:*\n" +
			"Our pricing depends on the service and hours you need. Typical ranges:\n" +
			"• Starter: $300-$800/month (5-15 hours)\n" +
			"• Professional: $800-$2,000/month (15-30 hours)\n" +
			"• Business: $2,000-$5,000/month (30+ hours)\n\n" +
			"Book a discovery call for a custom quote!",
		Keywords: []string{"price", "cost", "how much", "pricing", "rate", "fee"},
		Priority: 10,
	},
	{
		ID:       "trial",
		Question: "Do you offer a trial period?",
		Answer: "✅ *Trial & Onboarding:*\n" +
			"Yes! We offer:\n" +
			"1. Free 30-minute discovery call\n" +
			"2. Custom proposal and scope\n" +
			"3. 2-week trial period at reduced rate\n" +
			"4. No long-term commitment required\n\n" +
			"This helps ensure we're the right fit for your needs!",
		Keywords: []string{"trial", "test", "try", "onboarding"},
		Priority: 9,
	},
	{
		ID:       "availability",
		Question: "What are your working hours?",
		Answer: "🕐 *Availability:*\n" +
			"We work Monday–Friday, with flexible hours to match your timezone. " +
			"Standard coverage is 9 AM - 5 PM, with extended hours available for certain services. " +
			"We accommodate most US, UK, and AU time zones.",
		Keywords: []string{"availability", "available", "working hours", "timezone", "time zone"},
		Priority: 8,
	},
	{
		ID:       "security",
		Question: "How do you handle data security?",
		Answer: "🔒 *Security & Confidentiality:*\n" +
			"Your data is safe with us:\n" +
			"• All team members sign NDAs\n" +
			"• We use secure password managers\n" +
			"• 2FA enabled on all accounts\n" +
			"• GDPR and data privacy compliant\n\n" +
			"We take your privacy seriously!",
		Keywords: []string{"security", "privacy", "nda", "confidential", "secure"},
		Priority: 8,
	},
	{
		ID:       "tools",
		Question: "What tools do you use?",
		Answer: "🛠️ *Tools & Platforms:*\n" +
			"We're experienced with:\n" +
			"• Google Workspace, Microsoft Office\n" +
			"• Notion, Asana, Trello, Monday.com\n" +
			"• Slack, Zoom, Teams\n" +
			"• QuickBooks, Xero, FreshBooks\n" +
			"• Hootsuite, Buffer, Canva\n\n" +
			"Plus we're quick to learn new platforms!",
		Keywords: []string{"tools", "software", "platform", "crm", "apps"},
		Priority: 7,
	},
	{
		ID:       "payment",
		Question: "What payment methods do you accept?",
		Answer: "💳 *Payment:*\n" +
			"We accept:\n" +
			"• Credit/debit cards (Stripe)\n" +
			"• Bank transfer\n" +
			"• PayPal\n" +
			"• Monthly invoicing\n\n" +
			"Payment terms: Net 7 days. Monthly retainers billed at the beginning of each month.",
		Keywords: []string{"payment", "pay", "invoice", "billing", "paypal"},
		Priority: 7,
	},
	{
		ID:       "communication",
		Question: "How do we communicate?",
		Answer: "💬 *Communication:*\n" +
			"We adapt to your preferred method:\n" +
			"• Slack (most common)\n" +
			"• Email\n" +
			"• WhatsApp\n" +
			"• Weekly check-in calls available\n\n" +
			"We're responsive and keep you updated on all tasks!",
		Keywords: []string{"communicate", "contact", "reach", "slack"},
		Priority: 6,
	},
	{
		ID:       "cancellation",
		Question: "What's your cancellation policy?",
		Answer: "📋 *Cancellation Policy:*\n" +
			"We believe in flexibility:\n" +
			"• 30-day notice for cancellation\n" +
			"• No long-term contracts required\n" +
			"• Monthly rolling agreements\n" +
			"• Scale up or down anytime\n\n" +
			"We want you to stay because you're happy, not because you're locked in!",
		Keywords: []string{"cancel", "cancellation", "terminate", "policy"},
		Priority: 6,
	},
}
