package commands

import (
	"fmt"
	"time"

	"github.com/allisson/deliverydash/internal/delivery"
)

// TagsInput is a customer's delivery choice as given on the command line.
type TagsInput struct {
	Type       string
	Date       string
	Start      string
	End        string
	SlotName   string
	Location   string
	PostalCode string
	Fee        float64
}

// RunTags prints the Shopify order tags and note for a delivery choice.
func RunTags(ioTuple IOTuple, in TagsInput, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	data, err := in.toTagData()
	if err != nil {
		return err
	}

	tags := delivery.GenerateTags(data)
	notes := delivery.GenerateNotes(data)

	if format == "json" {
		return writeJSON(ioTuple.Writer, map[string]any{
			"tags":  tags,
			"notes": notes,
		})
	}

	_, _ = fmt.Fprintln(ioTuple.Writer, "Tags:")
	for _, tag := range tags {
		_, _ = fmt.Fprintf(ioTuple.Writer, "  %s\n", tag)
	}
	_, err = fmt.Fprintf(ioTuple.Writer, "Notes:\n%s\n", notes)
	return err
}

func (in TagsInput) toTagData() (delivery.TagData, error) {
	deliveryType := delivery.Type(in.Type)
	switch deliveryType {
	case delivery.TypeDelivery, delivery.TypeCollection, delivery.TypeExpress:
	default:
		return delivery.TagData{}, fmt.Errorf(
			"invalid type: %s (valid options: delivery, collection, express)",
			in.Type,
		)
	}

	data := delivery.TagData{
		Type:       deliveryType,
		TimeSlot:   delivery.TimeSlot{Name: in.SlotName, Start: in.Start, End: in.End},
		Location:   in.Location,
		PostalCode: in.PostalCode,
		Fee:        in.Fee,
	}

	if in.Date != "" {
		date, err := time.Parse(time.DateOnly, in.Date)
		if err != nil {
			return delivery.TagData{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", in.Date)
		}
		data.Date = date
	}

	return data, nil
}
