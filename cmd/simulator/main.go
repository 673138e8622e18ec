// Simulator drives synthetic visitor traffic against a running showroom:
// each visitor browses the catalog, opens car details, saves favorites and
// occasionally sends an inquiry. Useful for exercising the analytics
// counters under concurrent sessions.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type car struct {
	ID       string `json:"id"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	BodyType string `json:"bodyType"`
	Status   string `json:"status"`
}

// visitor is one simulated browsing session with its own cookie jar, so the
// server sees it as a distinct session.
type visitor struct {
	id     int
	client *http.Client
	apiURL string
}

func newVisitor(id int, apiURL string) (*visitor, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &visitor{
		id:     id,
		client: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		apiURL: apiURL,
	}, nil
}

func (v *visitor) get(path string, out interface{}) error {
	resp, err := v.client.Get(v.apiURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (v *visitor) post(path string) error {
	resp, err := v.client.Post(v.apiURL+path, "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("POST %s: %s", path, resp.Status)
	}
	return nil
}

// browse runs one visitor's session loop.
func (v *visitor) browse(interval time.Duration) {
	if err := v.post("/api/visit"); err != nil {
		log.WithError(err).WithField("visitor", v.id).Error("Failed to record visit")
	}

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		var cars []car
		path := "/api/cars"
		if rand.Intn(2) == 0 {
			path += "?status=available"
		}
		if err := v.get(path, &cars); err != nil {
			log.WithError(err).WithField("visitor", v.id).Error("Failed to browse catalog")
			continue
		}
		if len(cars) == 0 {
			continue
		}

		picked := cars[rand.Intn(len(cars))]
		if err := v.get("/api/cars/"+picked.ID, nil); err != nil {
			log.WithError(err).WithField("visitor", v.id).Error("Failed to view car")
			continue
		}
		log.WithFields(log.Fields{
			"visitor": v.id,
			"car":     picked.ID,
		}).Info("Viewed car")

		// A third of viewed cars get favorited, a fifth get an inquiry.
		if rand.Intn(3) == 0 {
			if err := v.post("/api/favorites/" + picked.ID + "/toggle"); err != nil {
				log.WithError(err).WithField("visitor", v.id).Error("Failed to toggle favorite")
			}
		}
		if picked.Status != "sold" && rand.Intn(5) == 0 {
			if err := v.post("/api/cars/" + picked.ID + "/inquiry"); err != nil {
				log.WithError(err).WithField("visitor", v.id).Error("Failed to send inquiry")
			} else {
				log.WithFields(log.Fields{
					"visitor": v.id,
					"car":     picked.ID,
				}).Info("Sent inquiry")
			}
		}
	}
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env")
	}

	visitorCount := 10
	if val := os.Getenv("VISITOR_COUNT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			visitorCount = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	interval := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	log.WithFields(log.Fields{
		"visitors": visitorCount,
		"api_url":  apiURL,
		"interval": interval,
	}).Info("Starting visitor simulation")

	started := 0
	for i := 0; i < visitorCount; i++ {
		v, err := newVisitor(i+1, apiURL)
		if err != nil {
			log.WithError(err).Error("Failed to create visitor")
			continue
		}
		go v.browse(interval)
		started++
	}

	if started == 0 {
		log.Error("No visitors started. Ensure the API is reachable. Exiting.")
		return
	}
	log.WithField("started_visitors", started).Info("Visitor simulation started")
	select {} // Block forever
}
