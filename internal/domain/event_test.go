package domain

import "testing"

func TestParseReminder(t *testing.T) {
	tests := []struct {
		input   string
		want    Reminder
		lead    int
		wantErr bool
	}{
		{input: "", want: ReminderNone, lead: -1},
		{input: "无提醒", want: ReminderNone, lead: -1},
		{input: "当天", want: ReminderSameDay, lead: 0},
		{input: "1d", want: ReminderOneDay, lead: 1},
		{input: "3天前", want: ReminderThree, lead: 3},
		{input: "1周前", want: ReminderWeek, lead: 7},
		{input: "1m", want: ReminderMonth, lead: 30},
		{input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReminder(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReminder(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseReminder(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got.LeadDays() != tt.lead {
				t.Errorf("LeadDays() = %d, want %d", got.LeadDays(), tt.lead)
			}
		})
	}
}

func TestEventFilter_Matches(t *testing.T) {
	e := &Event{OwnerID: "u1", Category: "生日", Type: EventAnniversary}

	tests := []struct {
		name   string
		filter EventFilter
		want   bool
	}{
		{"empty filter", EventFilter{}, true},
		{"owner match", EventFilter{OwnerID: "u1"}, true},
		{"owner mismatch", EventFilter{OwnerID: "u2"}, false},
		{"category match", EventFilter{Category: "生日"}, true},
		{"category mismatch", EventFilter{Category: "旅行"}, false},
		{"type mismatch", EventFilter{Type: EventCountdown}, false},
		{"all match", EventFilter{OwnerID: "u1", Category: "生日", Type: EventAnniversary}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(e); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseEventType(t *testing.T) {
	if got, _ := ParseEventType(""); got != EventCountdown {
		t.Errorf("default type = %q, want countdown", got)
	}
	if got, _ := ParseEventType("纪念日"); got != "" {
		// 纪念日 is a category, not a type
		t.Errorf("纪念日 parsed as %q", got)
	}
	if got, err := ParseEventType("anniversary"); err != nil || got != EventAnniversary {
		t.Errorf("anniversary = %q, %v", got, err)
	}
}
