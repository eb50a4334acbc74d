// Package catalog provides the static service catalog and FAQ table used as
// read-only reference data by the conversation engine.
package catalog

import (
	"sort"
	"strings"
)

// Category groups services for organization and recommendations.
type Category string

const (
	CategoryAdministrative Category = "administrative"
	CategoryMarketing      Category = "marketing"
	CategoryCustomer       Category = "customer_service"
	CategoryCreative       Category = "creative"
	CategoryFinancial      Category = "financial"
)

// PricingTier buckets services by typical monthly spend.
type PricingTier string

const (
	TierStarter      PricingTier = "starter"      // $300-$800/month
	TierProfessional PricingTier = "professional" // $800-$2000/month
	TierBusiness     PricingTier = "business"     // $2000-$5000/month
)

// Service describes one bookable service package.
type Service struct {
	ID                  string
	Key                 string
	DisplayName         string
	Description         string
	DetailedDescription string
	Category            Category
	Tier                PricingTier
	Deliverables        []string
	HoursRange          [2]int // typical min/max hours per week
	RequiredTools       []string
	IdealBusinessTypes  []string
	RequiresConsult     bool
}

// Entry is the (id, key, display name) triple exposed to the entity extractor.
type Entry struct {
	ID   string
	Key  string
	Name string
}

// Catalog holds the service packages keyed by id.
type Catalog struct {
	services map[string]Service
}

// Default returns the built-in catalog of service packages.
func Default() *Catalog {
	c := &Catalog{services: make(map[string]Service)}
	for _, s := range builtinServices {
		c.services[s.ID] = s
	}
	return c
}

// Get returns the service with the given id.
func (c *Catalog) Get(id string) (Service, bool) {
	s, ok := c.services[id]
	return s, ok
}

// GetByName returns the service whose display name matches case-insensitively.
func (c *Catalog) GetByName(name string) (Service, bool) {
	lower := strings.ToLower(name)
	for _, s := range c.services {
		if strings.ToLower(s.DisplayName) == lower {
			return s, true
		}
	}
	return Service{}, false
}

// All returns every service ordered by numeric id.
func (c *Catalog) All() []Service {
	services := make([]Service, 0, len(c.services))
	for _, s := range c.services {
		services = append(services, s)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Entries returns the ordered entry list for service matching.
func (c *Catalog) Entries() []Entry {
	all := c.All()
	entries := make([]Entry, 0, len(all))
	for _, s := range all {
		entries = append(entries, Entry{ID: s.ID, Key: s.Key, Name: s.DisplayName})
	}
	return entries
}

// Search returns services whose name or description contains the query.
func (c *Catalog) Search(query string) []Service {
	query = strings.ToLower(query)
	var results []Service
	for _, s := range c.All() {
		if strings.Contains(strings.ToLower(s.DisplayName), query) ||
			strings.Contains(strings.ToLower(s.Description), query) {
			results = append(results, s)
		}
	}
	return results
}

// Recommend scores services against the collected profile and returns up to
// five, best first. Matching the business type is weighted highest.
func (c *Catalog) Recommend(businessType string, hours int) []Service {
	type scored struct {
		service Service
		score   int
	}
	var candidates []scored
	for _, s := range c.All() {
		score := 0
		if businessType != "" && s.matchesBusinessType(businessType) {
			score += 3
		}
		if hours > 0 && hours >= s.HoursRange[0] && hours <= s.HoursRange[1] {
			score += 2
		}
		if score > 0 {
			candidates = append(candidates, scored{s, score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	results := make([]Service, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.service)
	}
	return results
}

func (s Service) matchesBusinessType(businessType string) bool {
	if len(s.IdealBusinessTypes) == 0 {
		return true
	}
	lower := strings.ToLower(businessType)
	for _, bt := range s.IdealBusinessTypes {
		bt = strings.ToLower(bt)
		if bt == "all business types" || strings.Contains(lower, bt) {
			return true
		}
	}
	return false
}

var builtinServices = []Service{
	{
		ID:          "1",
		Key:         "admin_support",
		DisplayName: "Administrative Support",
		Description: "Email triage, scheduling, data entry, and general ops.",
		DetailedDescription: "Comprehensive administrative support to keep your business running smoothly. " +
			"From inbox management to data organization, we handle the details so you can focus on growth.",
		Category: CategoryAdministrative,
		Tier:     TierProfessional,
		Deliverables: []string{
			"Email triage and response management",
			"Calendar scheduling and coordination",
			"Data entry and database management",
			"Document preparation and filing",
			"Travel arrangements",
			"Meeting preparation and notes",
		},
		HoursRange:         [2]int{10, 40},
		RequiredTools:      []string{"Google Workspace", "Microsoft Office"},
		IdealBusinessTypes: []string{"All business types"},
	},
	{
		ID:          "2",
		Key:         "social_media",
		DisplayName: "Social Media Management",
		Description: "Content calendars, post scheduling, and community engagement.",
		DetailedDescription: "Full-service social media management to build your brand presence. " +
			"We create engaging content, manage posting schedules, and interact with your community across all major platforms.",
		Category: CategoryMarketing,
		Tier:     TierProfessional,
		Deliverables: []string{
			"Monthly content calendar creation",
			"Daily post scheduling (3-5 posts/day)",
			"Community engagement and responses",
			"Hashtag research and optimization",
			"Analytics reporting (weekly/monthly)",
			"Brand voice consistency",
		},
		HoursRange:         [2]int{15, 40},
		RequiredTools:      []string{"Hootsuite/Buffer", "Canva", "Social platforms"},
		IdealBusinessTypes: []string{"E-commerce", "Coaching", "Agency", "B2C"},
	},
	{
		ID:          "3",
		Key:         "customer_support",
		DisplayName: "Customer Support",
		Description: "Tickets, FAQs, chat handling, and follow-ups.",
		DetailedDescription: "Professional customer support that delights your clients. " +
			"We handle inquiries, resolve issues, and ensure every customer interaction reflects your brand values.",
		Category: CategoryCustomer,
		Tier:     TierProfessional,
		Deliverables: []string{
			"Email and chat support responses",
			"Ticket management and tracking",
			"FAQ documentation",
			"Customer follow-up sequences",
			"Issue escalation handling",
			"Satisfaction surveys",
		},
		HoursRange:         [2]int{20, 40},
		RequiredTools:      []string{"Zendesk/Freshdesk", "Email", "Live Chat"},
		IdealBusinessTypes: []string{"E-commerce", "SaaS", "Service Business"},
	},
	{
		ID:          "4",
		Key:         "email_calendar",
		DisplayName: "Email & Calendar Management",
		Description: "Inbox management, meeting scheduling, and reminders.",
		DetailedDescription: "Take control of your time with expert email and calendar management. " +
			"We organize your inbox, schedule meetings efficiently, and ensure you never miss important deadlines.",
		Category: CategoryAdministrative,
		Tier:     TierStarter,
		Deliverables: []string{
			"Inbox zero methodology",
			"Priority email flagging",
			"Meeting coordination (with multiple parties)",
			"Calendar optimization",
			"Reminder setup and management",
			"Email template creation",
		},
		HoursRange:         [2]int{5, 20},
		RequiredTools:      []string{"Gmail/Outlook", "Google Calendar"},
		IdealBusinessTypes: []string{"Executives", "Entrepreneurs", "Consultants"},
	},
	{
		ID:          "5",
		Key:         "project_management",
		DisplayName: "Project Management",
		Description: "Task tracking, status updates, and coordination across teams.",
		DetailedDescription: "Keep projects on track with professional project management support. " +
			"We coordinate tasks, track progress, and ensure seamless communication across all team members.",
		Category: CategoryAdministrative,
		Tier:     TierProfessional,
		Deliverables: []string{
			"Project planning and roadmaps",
			"Task creation and assignment",
			"Progress tracking and reporting",
			"Team coordination",
			"Deadline management",
			"Stakeholder updates",
		},
		HoursRange:         [2]int{15, 40},
		RequiredTools:      []string{"Asana/Trello/Monday", "Slack"},
		IdealBusinessTypes: []string{"Agencies", "SaaS", "Startups", "Teams"},
	},
	{
		ID:          "6",
		Key:         "bookkeeping",
		DisplayName: "Bookkeeping & Invoicing",
		Description: "Expense tracking, invoicing, and basic bookkeeping.",
		DetailedDescription: "Maintain financial clarity with professional bookkeeping support. " +
			"We track expenses, manage invoices, and keep your books organized for smooth tax season and business decisions.",
		Category: CategoryFinancial,
		Tier:     TierBusiness,
		Deliverables: []string{
			"Expense categorization and tracking",
			"Invoice generation and follow-up",
			"Receipt management",
			"Monthly financial reports",
			"Accounts receivable tracking",
			"Basic reconciliation",
		},
		HoursRange:         [2]int{10, 30},
		RequiredTools:      []string{"QuickBooks/Xero", "Excel/Sheets"},
		IdealBusinessTypes: []string{"Small Business", "Freelancers", "Consultants"},
	},
	{
		ID:          "7",
		Key:         "content_writing",
		DisplayName: "Content Writing & Copy",
		Description: "Blog posts, landing pages, captions, and email copy.",
		DetailedDescription: "Engage your audience with compelling content that converts. " +
			"From blog posts to marketing copy, we create content that reflects your brand voice and drives results.",
		Category: CategoryCreative,
		Tier:     TierProfessional,
		Deliverables: []string{
			"Blog posts (4-8 per month)",
			"Landing page copy",
			"Email campaigns and sequences",
			"Social media captions",
			"Product descriptions",
			"SEO optimization",
		},
		HoursRange:         [2]int{10, 30},
		RequiredTools:      []string{"Google Docs", "Grammarly"},
		IdealBusinessTypes: []string{"E-commerce", "Coaching", "SaaS", "Agencies"},
	},
	{
		ID:          "8",
		Key:         "custom",
		DisplayName: "Custom Service Package",
		Description: "Tell us your unique needs and we'll create a custom solution.",
		DetailedDescription: "Every business is unique. If your needs don't fit our standard packages, " +
			"we'll work with you to create a custom service plan tailored specifically to your requirements and goals.",
		Category: CategoryAdministrative,
		Tier:     TierProfessional,
		Deliverables: []string{
			"Customized based on consultation",
			"Flexible scope and deliverables",
			"Tailored to your specific needs",
		},
		HoursRange:         [2]int{5, 40},
		IdealBusinessTypes: []string{"All business types"},
		RequiresConsult:    true,
	},
}
