package pages

// Static copy of the landing page sections

type numberedItem struct {
	Num   string
	Title string
	Desc  string
}

type layerItem struct {
	Icon  string
	Title string
	Desc  string
}

var heroBadge = "Structural Analysis for Growth-Stage Businesses"

var heroLead = "If your business generates between $500K and $2M annually, your website should be compounding growth, not silently reducing it. We identify where your site is losing conversions, authority, and organic visibility… and show you exactly how to fix it."

var problemFindings = []layerItem{
	{Icon: "trending-up", Title: "40–70% bounce rates"},
	{Icon: "layers", Title: "No dominant offer structure"},
	{Icon: "target", Title: "Generic messaging that blends in"},
	{Icon: "shield-check", Title: "Weak authority positioning"},
	{Icon: "search", Title: "Minimal SEO architecture"},
	{Icon: "zap", Title: "Friction-heavy conversion paths"},
}

var auditIs = []string{
	"Conversion architecture evaluation",
	"Positioning and messaging clarity score",
	"Authority and trust signal assessment",
	"SEO structure and visibility review",
	"Friction and funnel breakdown",
	"Scalability analysis (including AI-readiness)",
}

var auditIsNot = []string{
	"A “make it prettier” critique",
	"A generic SEO checklist",
	"A templated report",
	"Surface-level advice",
}

var deliverables = []numberedItem{
	{Num: "1", Title: "Website Performance Score (1–100)", Desc: "Across conversion, clarity, authority, SEO, and scalability."},
	{Num: "2", Title: "Top 3 Revenue Leaks", Desc: "The structural weaknesses likely costing you the most."},
	{Num: "3", Title: "Estimated Impact Analysis", Desc: "What these leaks are likely costing in growth potential."},
	{Num: "4", Title: "Quick Wins", Desc: "Immediate changes you can implement."},
	{Num: "5", Title: "Structural Fix Roadmap", Desc: "What needs rebuilding to unlock scale."},
}

var frameworkLayers = []layerItem{
	{Icon: "target", Title: "Positioning Clarity", Desc: "Can a visitor understand who you serve and why you're different in 5 seconds?"},
	{Icon: "layers", Title: "Offer Hierarchy", Desc: "Is there one dominant conversion pathway, or is everything competing for attention?"},
	{Icon: "shield-check", Title: "Trust Acceleration", Desc: "Do you immediately communicate authority and proof?"},
	{Icon: "zap", Title: "Friction Reduction", Desc: "Are you guiding action, or creating confusion?"},
	{Icon: "cpu", Title: "Scalable Infrastructure", Desc: "Is your site built to support SEO expansion, AI systems, and performance optimization?"},
}

var audienceFor = []string{
	"Generate $500K–$2M annually",
	"Actively invest in growth",
	"Care about authority and positioning",
	"Want scalable digital infrastructure",
	"Are ready to fix what's broken",
}

var audienceNotFor = []string{
	"Hobby projects",
	"Pre-revenue startups",
	"“Just curious” reviews",
	"Businesses unwilling to implement changes",
}

var nextSteps = []numberedItem{
	{Num: "01", Title: "You receive the full audit + roadmap"},
	{Num: "02", Title: "You can implement internally"},
	{Num: "03", Title: "Or we can architect and rebuild the structure"},
}
