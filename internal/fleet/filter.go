package fleet

import (
	"net/url"
	"strconv"

	"github.com/billyautos/showroom/internal/models"
)

// All is the sentinel criterion value meaning "unconstrained". An empty string
// means the same.
const All = "all"

// Criteria is the ephemeral filter value object. Year is kept in string form
// so criteria built from a query string and criteria built in memory compare
// identically; matching always normalizes it to an integer.
type Criteria struct {
	Make     string
	BodyType string
	Year     string
	Status   string
}

// CriteriaFromQuery reconstructs criteria from a page's query string.
func CriteriaFromQuery(q url.Values) Criteria {
	return Criteria{
		Make:     q.Get("make"),
		BodyType: q.Get("bodyType"),
		Year:     q.Get("year"),
		Status:   q.Get("status"),
	}
}

// CriteriaForYear builds a year-only criteria set from an integer year.
func CriteriaForYear(year int) Criteria {
	return Criteria{Year: strconv.Itoa(year)}
}

// Query encodes the criteria back into query parameters, omitting unset
// fields, so a selected filter round-trips through the URL.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"make":     c.Make,
		"bodyType": c.BodyType,
		"year":     c.Year,
		"status":   c.Status,
	} {
		if isSet(value) {
			q.Set(key, value)
		}
	}
	return q
}

// Matches reports whether the car satisfies every present criterion. Exact
// equality only; a year criterion that is not a number matches nothing.
func (c Criteria) Matches(car *models.Car) bool {
	if isSet(c.Make) && car.Make != c.Make {
		return false
	}
	if isSet(c.BodyType) && car.BodyType != c.BodyType {
		return false
	}
	if isSet(c.Status) && car.Status != c.Status {
		return false
	}
	if isSet(c.Year) {
		year, err := strconv.Atoi(c.Year)
		if err != nil || car.Year != year {
			return false
		}
	}
	return true
}

// Filter returns the cars satisfying the criteria, preserving their relative
// order. Criteria omitted or set to "all" impose no constraint.
func Filter(cars []models.Car, criteria Criteria) []models.Car {
	result := make([]models.Car, 0, len(cars))
	for i := range cars {
		if criteria.Matches(&cars[i]) {
			result = append(result, cars[i])
		}
	}
	return result
}

func isSet(value string) bool {
	return value != "" && value != All
}
