package knowledge

import "github.com/smart-support-core/server/internal/agent/model"

// Builtin corpus used to seed the index. Content is intentionally compact:
// the retriever contract only needs scored documents, not a real vector store.

// ProductCorpus returns the builtin product knowledge documents.
func ProductCorpus() []model.Document {
	return []model.Document{
		{
			Content: "Basic plan: $9.99 per month. Includes core features, 1 user seat, community support and 5GB storage.",
			Source:  "products/basic-plan",
		},
		{
			Content: "Premium plan: $29.99 per month. Includes all Basic features plus priority support, 5 user seats, 100GB storage and advanced analytics.",
			Source:  "products/premium-plan",
		},
		{
			Content: "Enterprise plan: custom pricing. Dedicated account manager, unlimited seats, SSO, audit logs and a 99.9% uptime SLA.",
			Source:  "products/enterprise-plan",
		},
		{
			Content: "Annual billing saves 20% on Basic and Premium plans. Plan upgrades are pro-rated; downgrades apply at the next billing cycle.",
			Source:  "products/billing-options",
		},
		{
			Content: "Current promotion: first month free on the Premium plan for new customers. Promotion codes are applied at checkout.",
			Source:  "products/promotions",
		},
	}
}

// FAQCorpus returns the builtin policy and troubleshooting documents.
func FAQCorpus() []model.Document {
	return []model.Document{
		{
			Content: "Refund policy: standard purchases are refundable within 14 days in original condition with proof of purchase. Premium customers have 30 days. Digital products have 7 days with no downloads after purchase.",
			Source:  "faqs/refund-policy",
		},
		{
			Content: "Subscription refunds are pro-rated to the end of the billing cycle when cancelled before the next billing date. Processing takes 5-7 business days.",
			Source:  "faqs/subscription-refunds",
		},
		{
			Content: "Non-refundable items: customized products, gift cards, used digital content and services already rendered.",
			Source:  "faqs/non-refundable",
		},
		{
			Content: "Login problems: clear browser cache and cookies, try a private window, then reset your password. Accounts lock after five failed attempts.",
			Source:  "faqs/login-help",
		},
		{
			Content: "App crashes: force close and restart the app, install pending updates, restart the device. Persistent crashes should be reported with crash logs.",
			Source:  "faqs/app-crashes",
		},
		{
			Content: "Payment declined: verify the card details and balance, then try another payment method or contact the issuing bank.",
			Source:  "faqs/payment-issues",
		},
		{
			Content: "Slow performance: check connection speed, update the browser, close unused tabs. Status page lists any ongoing incidents.",
			Source:  "faqs/performance",
		},
	}
}
