package delivery

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// TagData describes a customer's delivery choice for an order.
type TagData struct {
	Type       Type
	Date       time.Time
	TimeSlot   TimeSlot
	Location   string
	PostalCode string
	Fee        float64
}

// ExpressFeeTag marks orders that paid an express surcharge.
const ExpressFeeTag = "Express Fee"

// tagDateLayout renders dates as dd/mm/yyyy.
const tagDateLayout = "02/01/2006"

// GenerateTags returns the Shopify order tags for d: the title-cased type, the date as
// dd/mm/yyyy and the slot as "start-end", followed by the location, postal code and
// ExpressFeeTag when present.
func GenerateTags(d TagData) []string {
	tags := []string{typeTitle(d.Type)}

	if !d.Date.IsZero() {
		tags = append(tags, d.Date.Format(tagDateLayout))
	}
	if window := slotWindow(d.TimeSlot); window != "" {
		tags = append(tags, window)
	}
	if location := strings.TrimSpace(d.Location); location != "" {
		tags = append(tags, location)
	}
	if postal := strings.TrimSpace(d.PostalCode); postal != "" {
		tags = append(tags, strings.ToUpper(postal))
	}
	if d.Fee > 0 {
		tags = append(tags, ExpressFeeTag)
	}

	return tags
}

// GenerateNotes returns the order note describing d, one "Label: value" per line.
func GenerateNotes(d TagData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Delivery Type: %s\n", typeTitle(d.Type))
	if !d.Date.IsZero() {
		fmt.Fprintf(&b, "Delivery Date: %s\n", d.Date.Format("Monday, 2 January 2006"))
	}
	if window := slotWindow(d.TimeSlot); window != "" {
		if d.TimeSlot.Name != "" {
			fmt.Fprintf(&b, "Time Slot: %s (%s)\n", d.TimeSlot.Name, window)
		} else {
			fmt.Fprintf(&b, "Time Slot: %s\n", window)
		}
	}
	if location := strings.TrimSpace(d.Location); location != "" {
		fmt.Fprintf(&b, "Collection Location: %s\n", location)
	}
	if postal := strings.TrimSpace(d.PostalCode); postal != "" {
		fmt.Fprintf(&b, "Postal Code: %s\n", strings.ToUpper(postal))
	}
	if d.Fee > 0 {
		fmt.Fprintf(&b, "Express Fee: $%.2f\n", d.Fee)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func typeTitle(t Type) string {
	s := strings.TrimSpace(string(t))
	if s == "" {
		return "Delivery"
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

func slotWindow(slot TimeSlot) string {
	switch {
	case slot.Start != "" && slot.End != "":
		return slot.Start + "-" + slot.End
	case slot.Start != "":
		return slot.Start
	default:
		return slot.End
	}
}
