package config

// EventConfig is the public event metadata served by GET /api/event. It is
// normally supplied through the YAML config file; the defaults describe the
// TingNect 2025 edition.
type EventConfig struct {
	Name         string        `koanf:"name" json:"name"`
	Date         string        `koanf:"date" json:"date"`
	Time         EventTime     `koanf:"time" json:"time"`
	Location     EventLocation `koanf:"location" json:"location"`
	Organizer    string        `koanf:"organizer" json:"organizer"`
	Website      string        `koanf:"website" json:"website"`
	Registration string        `koanf:"registration" json:"registration"`
	Contact      EventContact  `koanf:"contact" json:"contact"`
}

type EventTime struct {
	Start  string `koanf:"start" json:"start"`
	End    string `koanf:"end" json:"end"`
	Dinner string `koanf:"dinner" json:"dinner"`
}

type EventLocation struct {
	City    string `koanf:"city" json:"city"`
	Country string `koanf:"country" json:"country"`
	Venue   string `koanf:"venue" json:"venue"`
}

type EventContact struct {
	Email  string            `koanf:"email" json:"email"`
	Phone  string            `koanf:"phone" json:"phone"`
	Social map[string]string `koanf:"social" json:"social,omitempty"`
}

func (e *EventConfig) applyDefaults() {
	if e.Name == "" {
		e.Name = "TingNect - Build for Billions"
	}
	if e.Date == "" {
		e.Date = "2025-08-16"
	}
	if e.Time.Start == "" {
		e.Time.Start = "14:00"
	}
	if e.Time.End == "" {
		e.Time.End = "17:00"
	}
	if e.Time.Dinner == "" {
		e.Time.Dinner = "17:00"
	}
	if e.Location.City == "" {
		e.Location.City = "Ho Chi Minh City"
	}
	if e.Location.Country == "" {
		e.Location.Country = "Vietnam"
	}
	if e.Location.Venue == "" {
		e.Location.Venue = "TBA"
	}
	if e.Organizer == "" {
		e.Organizer = "Ting Foundation"
	}
	if e.Website == "" {
		e.Website = "https://event.tingnect.com"
	}
	if e.Registration == "" {
		e.Registration = "https://lu.ma/qji7t8kq"
	}
	if e.Contact.Email == "" {
		e.Contact.Email = "contact@tingnect.com"
	}
	if e.Contact.Phone == "" {
		e.Contact.Phone = "+84 123 456 789"
	}
	if e.Contact.Social == nil {
		e.Contact.Social = map[string]string{
			"telegram": "https://t.me/tingnect",
			"twitter":  "https://x.com/TingNect",
			"facebook": "https://www.facebook.com/TingNect",
			"docs":     "https://docs.tingnect.com/",
		}
	}
}
