package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed knowledge.json
var knowledgeJSON []byte

// KnowledgeBase is the studio fact sheet the chat responder works from. It is
// embedded at build time so the chat endpoint never depends on the filesystem.
type KnowledgeBase struct {
	StudioName string `json:"studioName"`
	Contact    struct {
		Phone   []string `json:"phone"`
		Address string   `json:"address"`
		Email   string   `json:"email"`
	} `json:"contact"`
	Hours  string `json:"hours"`
	Artist struct {
		Name           string   `json:"name"`
		Qualifications []string `json:"qualifications"`
	} `json:"artist"`
	Services struct {
		Services []string `json:"services"`
		AddOns   []string `json:"addOns"`
	} `json:"services"`
	Highlights []string `json:"highlights"`
	FAQs       []struct {
		Q string `json:"q"`
		A string `json:"a"`
	} `json:"faqs"`
}

func LoadKnowledgeBase() (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := json.Unmarshal(knowledgeJSON, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return &kb, nil
}

func (kb *KnowledgeBase) phones() string {
	return strings.Join(kb.Contact.Phone, " / ")
}

// LocalReply runs the deterministic keyword rules against the knowledge base.
// It returns ok=false when no rule matches and the caller should fall back to
// the generative model.
func (kb *KnowledgeBase) LocalReply(message string) (string, bool) {
	m := strings.ToLower(message)

	if strings.Contains(m, "appointment") || strings.Contains(m, "book") || strings.Contains(m, "schedule") {
		return fmt.Sprintf(
			"**Book Your Appointment** 📅\n\n**Call:** %s\n**Address:** %s\n\n**Hours:** %s\n\nYou can call the studio to book or ask for walk-in availability.",
			kb.phones(), kb.Contact.Address, kb.Hours), true
	}

	if strings.Contains(m, "contact") || strings.Contains(m, "phone") || strings.Contains(m, "address") || strings.Contains(m, "email") {
		reply := fmt.Sprintf(
			"**Contact Information** 📞\n\n**Studio:** %s\n**Address:** %s\n**Phone:** %s",
			kb.StudioName, kb.Contact.Address, kb.phones())
		if kb.Contact.Email != "" {
			reply += "\n**Email:** " + kb.Contact.Email
		}
		return reply, true
	}

	if strings.Contains(m, "artist") || strings.Contains(m, "technician") ||
		(kb.Artist.Name != "" && strings.Contains(m, strings.ToLower(kb.Artist.Name))) {
		var quals []string
		for _, q := range kb.Artist.Qualifications {
			quals = append(quals, "• "+q)
		}
		return fmt.Sprintf(
			"**%s** 💅\n\n**Qualifications:**\n%s\n\nCall %s to book a session.",
			kb.Artist.Name, strings.Join(quals, "\n"), kb.phones()), true
	}

	if strings.Contains(m, "service") || strings.Contains(m, "treatment") || strings.Contains(m, "price") {
		var svcs, addOns []string
		for _, s := range kb.Services.Services {
			svcs = append(svcs, "• "+s)
		}
		for _, a := range kb.Services.AddOns {
			addOns = append(addOns, "• "+a)
		}
		return fmt.Sprintf(
			"**Our Services** 💼\n\n**Services:**\n%s\n\n**Add-ons:**\n%s\n\nCall %s for pricing and tailored recommendations.",
			strings.Join(svcs, "\n"), strings.Join(addOns, "\n"), kb.phones()), true
	}

	for _, faq := range kb.FAQs {
		key := strings.ToLower(strings.TrimSpace(strings.Split(faq.Q, "?")[0]))
		if key != "" && strings.Contains(m, key) {
			return fmt.Sprintf("**FAQ** — %s\n\n%s", faq.Q, faq.A), true
		}
	}

	if strings.Contains(m, "highlight") || strings.Contains(m, "special") || strings.Contains(m, "feature") {
		var hl []string
		for _, h := range kb.Highlights {
			hl = append(hl, "• "+h)
		}
		return fmt.Sprintf("**Studio Highlights** ✨\n\n%s", strings.Join(hl, "\n")), true
	}

	for _, s := range append(append([]string{}, kb.Services.Services...), kb.Services.AddOns...) {
		if strings.Contains(m, strings.ToLower(s)) {
			return fmt.Sprintf(
				"**%s** 💅\n\nWe offer **%s** with premium products and full hygiene protocols. Call %s for details and availability.",
				s, s, kb.phones()), true
		}
	}

	return "", false
}

// FallbackReply is the apologetic answer returned when the generative model
// cannot be reached. Kept friendly so the chat widget never shows an error.
func (kb *KnowledgeBase) FallbackReply() string {
	return fmt.Sprintf(
		"I apologize, but I'm having trouble generating a response right now.\n\nFor accurate and immediate information about %s, please:\n\n📞 Call: %s\n📍 Visit: %s\n\nOur team will be happy to help with services, bookings, or anything else!",
		kb.StudioName, strings.Join(kb.Contact.Phone, " or "), kb.Contact.Address)
}
