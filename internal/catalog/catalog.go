// Package catalog bundles the reference fleet used to seed an empty store on
// first run.
package catalog

import "github.com/billyautos/showroom/internal/models"

// DefaultSeedSize is how many catalog entries the store seeds on first run.
const DefaultSeedSize = 6

// Fleet is the bundled reference catalog, in display order.
var Fleet = []models.Car{
	{
		ID:            "ferrari-sf90-stradale",
		Make:          "Ferrari",
		Model:         "SF90 Stradale",
		Year:          2024,
		Price:         750000,
		Mileage:       0,
		BodyType:      models.BodyHypercar,
		Engine:        "4.0L V8 Twin-Turbo Hybrid",
		Horsepower:    986,
		Acceleration:  "2.5s",
		Transmission:  "8-Speed Dual-Clutch",
		Color:         "Rosso Corsa",
		InteriorColor: "Black Alcantara",
		FuelType:      "Hybrid",
		Images: []string{
			"https://images.unsplash.com/photo-1592198084033-aade902d1aae?w=800&auto=format&fit=crop",
		},
		Featured: true,
		New:      true,
		Specs: models.CarSpecs{
			TopSpeed:   "340 km/h",
			Torque:     "800 Nm",
			Drivetrain: "AWD",
			Seats:      2,
		},
	},
	{
		ID:            "lamborghini-revuelto",
		Make:          "Lamborghini",
		Model:         "Revuelto",
		Year:          2024,
		Price:         620000,
		Mileage:       0,
		BodyType:      models.BodyHypercar,
		Engine:        "6.5L V12 Hybrid",
		Horsepower:    1015,
		Acceleration:  "2.5s",
		Transmission:  "8-Speed Dual-Clutch",
		Color:         "Verde Mantis",
		InteriorColor: "Nero Ade",
		FuelType:      "Hybrid",
		Images: []string{
			"https://images.unsplash.com/photo-1544636331-e26879cd4d9b?w=800&auto=format&fit=crop",
		},
		Featured: true,
		New:      true,
		Specs: models.CarSpecs{
			TopSpeed:   "350 km/h",
			Torque:     "725 Nm",
			Drivetrain: "AWD",
			Seats:      2,
		},
	},
	{
		ID:            "porsche-911-gt3-rs",
		Make:          "Porsche",
		Model:         "911 GT3 RS",
		Year:          2024,
		Price:         320000,
		Mileage:       500,
		BodyType:      models.BodySupercar,
		Engine:        "4.0L Flat-6",
		Horsepower:    518,
		Acceleration:  "3.2s",
		Transmission:  "7-Speed PDK",
		Color:         "GT Silver",
		InteriorColor: "Black Leather",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1614162692292-7ac56d7f7f1e?w=800&auto=format&fit=crop",
		},
		Featured: true,
		New:      false,
		Specs: models.CarSpecs{
			TopSpeed:   "296 km/h",
			Torque:     "465 Nm",
			Drivetrain: "RWD",
			Seats:      2,
		},
	},
	{
		ID:            "mclaren-750s",
		Make:          "McLaren",
		Model:         "750S",
		Year:          2024,
		Price:         450000,
		Mileage:       0,
		BodyType:      models.BodySupercar,
		Engine:        "4.0L V8 Twin-Turbo",
		Horsepower:    750,
		Acceleration:  "2.8s",
		Transmission:  "7-Speed SSG",
		Color:         "Papaya Spark",
		InteriorColor: "Carbon Black",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1621135802920-133df287f89c?w=800&auto=format&fit=crop",
		},
		Featured: true,
		New:      true,
		Specs: models.CarSpecs{
			TopSpeed:   "332 km/h",
			Torque:     "800 Nm",
			Drivetrain: "RWD",
			Seats:      2,
		},
	},
	{
		ID:            "rolls-royce-cullinan",
		Make:          "Rolls-Royce",
		Model:         "Cullinan Black Badge",
		Year:          2024,
		Price:         480000,
		Mileage:       200,
		BodyType:      models.BodySUV,
		Engine:        "6.75L V12 Twin-Turbo",
		Horsepower:    600,
		Acceleration:  "4.8s",
		Transmission:  "8-Speed Automatic",
		Color:         "Black Diamond",
		InteriorColor: "Mandarin Orange",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1631295868223-63265b40d9e4?w=800&auto=format&fit=crop",
		},
		Featured: true,
		New:      false,
		Specs: models.CarSpecs{
			TopSpeed:   "280 km/h",
			Torque:     "900 Nm",
			Drivetrain: "AWD",
			Seats:      5,
		},
	},
	{
		ID:            "bentley-continental-gt",
		Make:          "Bentley",
		Model:         "Continental GT Speed",
		Year:          2024,
		Price:         380000,
		Mileage:       0,
		BodyType:      models.BodyCoupe,
		Engine:        "6.0L W12 Twin-Turbo",
		Horsepower:    659,
		Acceleration:  "3.5s",
		Transmission:  "8-Speed Dual-Clutch",
		Color:         "Glacier White",
		InteriorColor: "Beluga",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1580274455191-1c62238fa333?w=800&auto=format&fit=crop",
		},
		Featured: false,
		New:      true,
		Specs: models.CarSpecs{
			TopSpeed:   "335 km/h",
			Torque:     "900 Nm",
			Drivetrain: "AWD",
			Seats:      4,
		},
	},
	{
		ID:            "mercedes-amg-gt-black",
		Make:          "Mercedes-AMG",
		Model:         "GT Black Series",
		Year:          2023,
		Price:         420000,
		Mileage:       1200,
		BodyType:      models.BodySupercar,
		Engine:        "4.0L V8 Twin-Turbo",
		Horsepower:    730,
		Acceleration:  "3.1s",
		Transmission:  "7-Speed AMG Speedshift",
		Color:         "Magno Grey",
		InteriorColor: "Black Nappa",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1618843479313-40f8afb4b4d8?w=800&auto=format&fit=crop",
		},
		Featured: false,
		New:      false,
		Specs: models.CarSpecs{
			TopSpeed:   "325 km/h",
			Torque:     "800 Nm",
			Drivetrain: "RWD",
			Seats:      2,
		},
	},
	{
		ID:            "aston-martin-dbs",
		Make:          "Aston Martin",
		Model:         "DBS Superleggera",
		Year:          2024,
		Price:         390000,
		Mileage:       0,
		BodyType:      models.BodyCoupe,
		Engine:        "5.2L V12 Twin-Turbo",
		Horsepower:    715,
		Acceleration:  "3.4s",
		Transmission:  "8-Speed Automatic",
		Color:         "Quantum Silver",
		InteriorColor: "Obsidian Black",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1617814076367-b759c7d7e738?w=800&auto=format&fit=crop",
		},
		Featured: false,
		New:      true,
		Specs: models.CarSpecs{
			TopSpeed:   "340 km/h",
			Torque:     "900 Nm",
			Drivetrain: "RWD",
			Seats:      4,
		},
	},
	{
		ID:            "bugatti-chiron",
		Make:          "Bugatti",
		Model:         "Chiron Sport",
		Year:          2023,
		Price:         3200000,
		Mileage:       800,
		BodyType:      models.BodyHypercar,
		Engine:        "8.0L W16 Quad-Turbo",
		Horsepower:    1500,
		Acceleration:  "2.4s",
		Transmission:  "7-Speed Dual-Clutch",
		Color:         "French Racing Blue",
		InteriorColor: "Cognac Leather",
		FuelType:      "Petrol",
		Images: []string{
			"https://images.unsplash.com/photo-1566473965997-3de9c817e938?w=800&auto=format&fit=crop",
		},
		Featured: true,
		New:      false,
		Specs: models.CarSpecs{
			TopSpeed:   "420 km/h",
			Torque:     "1600 Nm",
			Drivetrain: "AWD",
			Seats:      2,
		},
	},
}

// Seed returns the first n catalog entries, each tagged available, as
// independent copies safe to mutate.
func Seed(n int) []models.Car {
	if n <= 0 || n > len(Fleet) {
		n = len(Fleet)
	}
	out := make([]models.Car, n)
	for i := range out {
		out[i] = Fleet[i]
		out[i].Status = models.StatusAvailable
		out[i].Images = append([]string(nil), Fleet[i].Images...)
	}
	return out
}
