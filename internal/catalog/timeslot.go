package catalog

import (
	"fmt"
	"strconv"
)

const (
	// SlotCount is the number of half-hour slots between 05:00 and 23:30.
	SlotCount = 38

	firstSlotMinutes = 5 * 60
	slotMinutes      = 30
)

// SlotGroup is a labelled run of consecutive time slots.
type SlotGroup struct {
	Label string   `json:"label"`
	Slots []Option `json:"slots"`
}

var slotGroupBounds = []struct {
	label      string
	start, end int
}{
	{"Manhã", 0, 15},
	{"Tarde", 16, 27},
	{"Noite", 28, 37},
}

// TimeSlots returns every slot code with its wall-clock label.
func TimeSlots() []Option {
	out := make([]Option, 0, SlotCount)
	for i := 0; i < SlotCount; i++ {
		out = append(out, slotOption(i))
	}
	return out
}

func SlotGroups() []SlotGroup {
	groups := make([]SlotGroup, 0, len(slotGroupBounds))
	for _, b := range slotGroupBounds {
		g := SlotGroup{Label: b.label}
		for i := b.start; i <= b.end; i++ {
			g.Slots = append(g.Slots, slotOption(i))
		}
		groups = append(groups, g)
	}
	return groups
}

// SlotLabel returns the HH:MM label of a slot code and false for unknown codes.
func SlotLabel(code string) (string, bool) {
	i, err := strconv.Atoi(code)
	if err != nil || i < 0 || i >= SlotCount {
		return "", false
	}
	return slotOption(i).Label, true
}

func slotOption(i int) Option {
	m := firstSlotMinutes + i*slotMinutes
	return Option{
		Value: strconv.Itoa(i),
		Label: fmt.Sprintf("%02d:%02d", m/60, m%60),
	}
}
