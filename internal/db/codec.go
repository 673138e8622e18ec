package db

import (
	"strings"

	"github.com/billyautos/showroom/internal/models"
)

// StoredSpecs is the nested spec block of the persisted car shape.
type StoredSpecs struct {
	Mileage      int    `bson:"mileage" json:"mileage"`
	Horsepower   int    `bson:"horsepower" json:"horsepower"`
	Engine       string `bson:"engine" json:"engine"`
	Acceleration string `bson:"acceleration" json:"acceleration"`
	TopSpeed     string `bson:"topSpeed" json:"topSpeed"`
	Transmission string `bson:"transmission" json:"transmission"`
	Drivetrain   string `bson:"drivetrain" json:"drivetrain"`
	FuelType     string `bson:"fuelType" json:"fuelType"`
	Torque       string `bson:"torque" json:"torque"`
	Seats        int    `bson:"seats" json:"seats"`
}

// StoredCar is the flat record shape written to the durable medium. Name keeps
// the combined "make model" string older payloads carry; Model is also stored
// separately so reads never have to recover it by prefix-stripping. Position
// preserves insertion order across media that have no natural ordering.
type StoredCar struct {
	ID            string      `bson:"_id" json:"id"`
	Name          string      `bson:"name" json:"name"`
	Make          string      `bson:"make" json:"make"`
	Model         string      `bson:"model,omitempty" json:"model,omitempty"`
	Year          int         `bson:"year" json:"year"`
	Price         int         `bson:"price" json:"price"`
	Status        string      `bson:"status" json:"status"`
	BodyType      string      `bson:"bodyType" json:"bodyType"`
	Color         string      `bson:"color" json:"color"`
	InteriorColor string      `bson:"interiorColor" json:"interiorColor"`
	CoverImage    string      `bson:"coverImage" json:"coverImage"`
	Gallery       []string    `bson:"gallery" json:"gallery"`
	Specs         StoredSpecs `bson:"specs" json:"specs"`
	Featured      bool        `bson:"featured" json:"featured"`
	IsNew         bool        `bson:"isNew" json:"isNew"`
	Position      int         `bson:"position" json:"position"`
}

// EncodeCar converts the in-memory shape to the persisted one.
func EncodeCar(car models.Car, position int) StoredCar {
	stored := StoredCar{
		ID:            car.ID,
		Name:          strings.TrimSpace(car.Make + " " + car.Model),
		Make:          car.Make,
		Model:         car.Model,
		Year:          car.Year,
		Price:         car.Price,
		Status:        car.Status,
		BodyType:      car.BodyType,
		Color:         car.Color,
		InteriorColor: car.InteriorColor,
		Specs: StoredSpecs{
			Mileage:      car.Mileage,
			Horsepower:   car.Horsepower,
			Engine:       car.Engine,
			Acceleration: car.Acceleration,
			TopSpeed:     car.Specs.TopSpeed,
			Transmission: car.Transmission,
			Drivetrain:   car.Specs.Drivetrain,
			FuelType:     car.FuelType,
			Torque:       car.Specs.Torque,
			Seats:        car.Specs.Seats,
		},
		Featured: car.Featured,
		IsNew:    car.New,
		Position: position,
	}
	if stored.Status == "" {
		stored.Status = models.StatusAvailable
	}
	if len(car.Images) > 0 {
		stored.CoverImage = car.Images[0]
		stored.Gallery = append([]string(nil), car.Images[1:]...)
	}
	return stored
}

// DecodeCar converts the persisted shape back to the in-memory one, applying
// the presentation defaults for fields older payloads may have left blank.
func DecodeCar(stored StoredCar) models.Car {
	car := models.Car{
		ID:            stored.ID,
		Make:          stored.Make,
		Model:         storedModel(stored),
		Year:          stored.Year,
		Price:         stored.Price,
		Mileage:       stored.Specs.Mileage,
		BodyType:      stored.BodyType,
		Engine:        stored.Specs.Engine,
		Horsepower:    stored.Specs.Horsepower,
		Acceleration:  fallback(stored.Specs.Acceleration, "3.0s"),
		Transmission:  fallback(stored.Specs.Transmission, "Automatic"),
		Color:         stored.Color,
		InteriorColor: fallback(stored.InteriorColor, "Black"),
		FuelType:      fallback(stored.Specs.FuelType, "Petrol"),
		Featured:      stored.Featured,
		New:           stored.IsNew,
		Status:        stored.Status,
		Specs: models.CarSpecs{
			TopSpeed:   fallback(stored.Specs.TopSpeed, "300 km/h"),
			Torque:     fallback(stored.Specs.Torque, "700 Nm"),
			Drivetrain: fallback(stored.Specs.Drivetrain, "RWD"),
			Seats:      stored.Specs.Seats,
		},
	}
	if car.Specs.Seats == 0 {
		car.Specs.Seats = 2
	}
	for _, img := range append([]string{stored.CoverImage}, stored.Gallery...) {
		if img != "" {
			car.Images = append(car.Images, img)
		}
	}
	car.Normalize()
	return car
}

// EncodeFleet converts a whole collection, numbering positions by index.
func EncodeFleet(cars []models.Car) []StoredCar {
	out := make([]StoredCar, len(cars))
	for i, car := range cars {
		out[i] = EncodeCar(car, i)
	}
	return out
}

// DecodeFleet converts a whole persisted collection in stored order.
func DecodeFleet(stored []StoredCar) []models.Car {
	out := make([]models.Car, len(stored))
	for i, s := range stored {
		out[i] = DecodeCar(s)
	}
	return out
}

// storedModel prefers the dedicated model field; payloads written before it
// existed fall back to stripping the make prefix off the combined name.
func storedModel(stored StoredCar) string {
	if stored.Model != "" {
		return stored.Model
	}
	model := strings.TrimSpace(strings.TrimPrefix(stored.Name, stored.Make))
	if model == "" {
		return stored.Name
	}
	return model
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
