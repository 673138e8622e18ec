package models

import (
	"strings"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	cases := map[int]string{
		0:       "$0",
		999:     "$999",
		1000:    "$1,000",
		750000:  "$750,000",
		3200000: "$3,200,000",
	}
	for price, want := range cases {
		if got := FormatPrice(price); got != want {
			t.Errorf("FormatPrice(%d) = %q, want %q", price, got, want)
		}
	}
}

func TestDisplayPrice_PriceOnRequest(t *testing.T) {
	car := Car{Price: 0}
	if !car.IsPriceOnRequest() {
		t.Error("zero price should read as price on request")
	}
	if got := car.DisplayPrice(); got != "P.O.A." {
		t.Errorf("DisplayPrice() = %q, want P.O.A.", got)
	}

	car.Price = 450000
	if car.IsPriceOnRequest() {
		t.Error("non-zero price should not read as price on request")
	}
	if got := car.DisplayPrice(); got != "$450,000" {
		t.Errorf("DisplayPrice() = %q, want $450,000", got)
	}
}

func TestNormalize(t *testing.T) {
	car := Car{}
	car.Normalize()
	if car.Status != StatusAvailable {
		t.Errorf("Status = %q, want %q", car.Status, StatusAvailable)
	}
	if len(car.Images) != 1 || car.Images[0] != PlaceholderImage {
		t.Errorf("Images = %v, want placeholder", car.Images)
	}

	car = Car{Status: StatusSold, Images: []string{"a.jpg", "b.jpg"}}
	car.Normalize()
	if car.Status != StatusSold {
		t.Errorf("Normalize overwrote status %q", car.Status)
	}
	if car.CoverImage() != "a.jpg" {
		t.Errorf("CoverImage() = %q, want a.jpg", car.CoverImage())
	}
}

func TestWhatsAppLink(t *testing.T) {
	car := Car{Make: "Ferrari", Model: "SF90 Stradale", Year: 2024}
	link := WhatsAppLink("96181999598", &car)

	if !strings.HasPrefix(link, "https://wa.me/96181999598?text=") {
		t.Errorf("unexpected link prefix: %s", link)
	}
	for _, fragment := range []string{"2024", "Ferrari", "SF90+Stradale"} {
		if !strings.Contains(link, fragment) {
			t.Errorf("link missing %q: %s", fragment, link)
		}
	}
	if strings.Contains(link, " ") {
		t.Errorf("link contains unencoded spaces: %s", link)
	}
}

func TestName(t *testing.T) {
	car := Car{Make: "Aston Martin", Model: "DBS Superleggera"}
	if got := car.Name(); got != "Aston Martin DBS Superleggera" {
		t.Errorf("Name() = %q", got)
	}
}
