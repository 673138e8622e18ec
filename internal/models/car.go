package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Body types offered by the showroom.
const (
	BodyHypercar    = "Hypercar"
	BodySupercar    = "Supercar"
	BodySUV         = "SUV"
	BodySedan       = "Sedan"
	BodyCoupe       = "Coupe"
	BodyConvertible = "Convertible"
)

// Car statuses.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

// PlaceholderImage is used as the cover when a car has no images at all.
const PlaceholderImage = "/images/placeholder-car.jpg"

// CarSpecs holds the secondary performance figures shown on the detail view.
type CarSpecs struct {
	TopSpeed   string `json:"topSpeed"`
	Torque     string `json:"torque"`
	Drivetrain string `json:"drivetrain"`
	Seats      int    `json:"seats"`
}

// Car represents one inventory entry. Images is ordered; the first element is
// the cover image. Status is always populated after normalization.
type Car struct {
	ID            string   `json:"id"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	Year          int      `json:"year"`
	Price         int      `json:"price"`
	Mileage       int      `json:"mileage"`
	BodyType      string   `json:"bodyType"`
	Engine        string   `json:"engine"`
	Horsepower    int      `json:"horsepower"`
	Acceleration  string   `json:"acceleration"` // 0-100 km/h, e.g. "2.5s"
	Transmission  string   `json:"transmission"`
	Color         string   `json:"color"`
	InteriorColor string   `json:"interiorColor"`
	FuelType      string   `json:"fuelType"`
	Images        []string `json:"images"`
	Featured      bool     `json:"featured"`
	New           bool     `json:"new"`
	Status        string   `json:"status"`
	Specs         CarSpecs `json:"specs"`
}

// Normalize fills the defaults the rest of the system relies on: an explicit
// status and a non-empty image list.
func (c *Car) Normalize() {
	if c.Status == "" {
		c.Status = StatusAvailable
	}
	if len(c.Images) == 0 {
		c.Images = []string{PlaceholderImage}
	}
}

// CoverImage returns the first image, or the placeholder for an image-less car.
func (c *Car) CoverImage() string {
	if len(c.Images) == 0 {
		return PlaceholderImage
	}
	return c.Images[0]
}

// Name returns the display name, e.g. "Ferrari SF90 Stradale".
func (c *Car) Name() string {
	return strings.TrimSpace(c.Make + " " + c.Model)
}

// IsPriceOnRequest reports whether the price should be hidden. A zero price is
// the sentinel for "price on request", never a real price.
func (c *Car) IsPriceOnRequest() bool {
	return c.Price == 0
}

// DisplayPrice returns the price as shown to visitors: "P.O.A." for the zero
// sentinel, otherwise a grouped dollar amount.
func (c *Car) DisplayPrice() string {
	if c.IsPriceOnRequest() {
		return "P.O.A."
	}
	return FormatPrice(c.Price)
}

// FormatPrice renders an integer dollar amount with thousands separators.
func FormatPrice(price int) string {
	s := strconv.Itoa(price)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// WhatsAppLink builds the inquiry deep link for one car. The message carries
// year, make and model; the link is constructed, never parsed.
func WhatsAppLink(phone string, car *Car) string {
	message := fmt.Sprintf(
		"Hello, I am interested in the %d %s %s I saw on your website. Please provide more details.",
		car.Year, car.Make, car.Model,
	)
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// WhatsAppGreetingLink builds the general contact link used by the site widget.
func WhatsAppGreetingLink(phone string) string {
	message := "Hello, I am interested in your luxury vehicles. Please assist me."
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
