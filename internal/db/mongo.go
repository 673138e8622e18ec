package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/billyautos/showroom/internal/models"
	"github.com/billyautos/showroom/internal/notify"
)

// Totals document id inside the counters collection.
const totalsDocID = "_totals"

// ConnectMongo connects to MongoDB using the given URI and verifies the
// connection with a ping.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// MongoStore mirrors the showroom state to a hosted document database. Cars
// live one document per record, favorites one document per owner, counters in
// per-car documents plus a totals document updated with atomic increments so
// concurrent sessions never lose a count.
type MongoStore struct {
	Cars      *mongo.Collection
	Favorites *mongo.Collection
	Counters  *mongo.Collection
	client    *mongo.Client
	bus       notify.Bus
}

// NewMongoStore wires the store against the named database.
func NewMongoStore(client *mongo.Client, database string, bus notify.Bus) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		Cars:      db.Collection("cars"),
		Favorites: db.Collection("favorites"),
		Counters:  db.Collection("counters"),
		client:    client,
		bus:       bus,
	}
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// LoadFleet reads the whole collection in insertion order.
func (s *MongoStore) LoadFleet(ctx context.Context) ([]models.Car, error) {
	if s.Cars == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := s.Cars.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var stored []StoredCar
	if err := cursor.All(ctx, &stored); err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, nil
	}
	return DecodeFleet(stored), nil
}

// SaveFleet replaces the whole collection. Used by first-run seeding.
func (s *MongoStore) SaveFleet(ctx context.Context, cars []models.Car) error {
	if s.Cars == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if _, err := s.Cars.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	stored := EncodeFleet(cars)
	docs := make([]interface{}, len(stored))
	for i, c := range stored {
		docs[i] = c
	}
	if len(docs) > 0 {
		if _, err := s.Cars.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	s.publish(notify.EntityFleet)
	return nil
}

// InsertCar appends one record after the current last position.
func (s *MongoStore) InsertCar(ctx context.Context, car models.Car) error {
	if s.Cars == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	position := 0
	var last StoredCar
	err := s.Cars.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})).Decode(&last)
	if err == nil {
		position = last.Position + 1
	} else if err != mongo.ErrNoDocuments {
		return err
	}
	if _, err := s.Cars.InsertOne(ctx, EncodeCar(car, position)); err != nil {
		return err
	}
	s.publish(notify.EntityFleet)
	return nil
}

// UpdateCar replaces the record matching the car's id.
func (s *MongoStore) UpdateCar(ctx context.Context, car models.Car) error {
	if s.Cars == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	var current StoredCar
	if err := s.Cars.FindOne(ctx, bson.M{"_id": car.ID}).Decode(&current); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}
	if _, err := s.Cars.ReplaceOne(ctx, bson.M{"_id": car.ID}, EncodeCar(car, current.Position)); err != nil {
		return err
	}
	s.publish(notify.EntityFleet)
	return nil
}

// DeleteCar removes the record matching id. Deleting an absent id is a no-op.
func (s *MongoStore) DeleteCar(ctx context.Context, id string) error {
	if s.Cars == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := s.Cars.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount > 0 {
		s.publish(notify.EntityFleet)
	}
	return nil
}

type favoritesDoc struct {
	Owner string   `bson:"_id"`
	IDs   []string `bson:"ids"`
}

// LoadFavorites reads one owner's favorite ids.
func (s *MongoStore) LoadFavorites(ctx context.Context, owner string) ([]string, error) {
	if s.Favorites == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var doc favoritesDoc
	err := s.Favorites.FindOne(ctx, bson.M{"_id": owner}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.IDs, nil
}

// SaveFavorites overwrites one owner's whole set.
func (s *MongoStore) SaveFavorites(ctx context.Context, owner string, ids []string) error {
	if s.Favorites == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if len(ids) == 0 {
		if _, err := s.Favorites.DeleteOne(ctx, bson.M{"_id": owner}); err != nil {
			return err
		}
	} else {
		opts := options.Replace().SetUpsert(true)
		if _, err := s.Favorites.ReplaceOne(ctx, bson.M{"_id": owner}, favoritesDoc{Owner: owner, IDs: ids}, opts); err != nil {
			return err
		}
	}
	s.publish(notify.EntityFavorites)
	return nil
}

type counterDoc struct {
	ID             string     `bson:"_id"`
	Views          int        `bson:"views"`
	Inquiries      int        `bson:"inquiries"`
	LastViewed     *time.Time `bson:"lastViewed,omitempty"`
	TotalViews     int        `bson:"totalViews"`
	TotalInquiries int        `bson:"totalInquiries"`
	SiteVisits     int        `bson:"siteVisits"`
}

// LoadAnalytics reads every counter document into one snapshot.
func (s *MongoStore) LoadAnalytics(ctx context.Context) (models.AnalyticsData, error) {
	data := models.NewAnalyticsData()
	if s.Counters == nil {
		return data, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := s.Counters.Find(ctx, bson.M{})
	if err != nil {
		return data, err
	}
	defer cursor.Close(ctx)
	var docs []counterDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return data, err
	}
	for _, doc := range docs {
		if doc.ID == totalsDocID {
			data.TotalViews = doc.TotalViews
			data.TotalInquiries = doc.TotalInquiries
			data.SiteVisits = doc.SiteVisits
			continue
		}
		data.Cars[doc.ID] = models.CarAnalytics{
			Views:      doc.Views,
			Inquiries:  doc.Inquiries,
			LastViewed: doc.LastViewed,
		}
	}
	return data, nil
}

// IncrementView atomically bumps one car's views and the global total.
// Increment-by-delta keeps concurrent sessions from losing counts.
func (s *MongoStore) IncrementView(ctx context.Context, carID string, at time.Time) error {
	if s.Counters == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.Counters.UpdateOne(ctx, bson.M{"_id": carID},
		bson.M{"$inc": bson.M{"views": 1}, "$set": bson.M{"lastViewed": at}}, opts); err != nil {
		return err
	}
	if _, err := s.Counters.UpdateOne(ctx, bson.M{"_id": totalsDocID},
		bson.M{"$inc": bson.M{"totalViews": 1}}, opts); err != nil {
		return err
	}
	s.publish(notify.EntityAnalytics)
	return nil
}

// IncrementInquiry atomically bumps one car's inquiries and the global total.
func (s *MongoStore) IncrementInquiry(ctx context.Context, carID string) error {
	if s.Counters == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.Counters.UpdateOne(ctx, bson.M{"_id": carID},
		bson.M{"$inc": bson.M{"inquiries": 1}}, opts); err != nil {
		return err
	}
	if _, err := s.Counters.UpdateOne(ctx, bson.M{"_id": totalsDocID},
		bson.M{"$inc": bson.M{"totalInquiries": 1}}, opts); err != nil {
		return err
	}
	s.publish(notify.EntityAnalytics)
	return nil
}

// IncrementSiteVisit atomically bumps the site-wide visit counter.
func (s *MongoStore) IncrementSiteVisit(ctx context.Context) error {
	if s.Counters == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.Counters.UpdateOne(ctx, bson.M{"_id": totalsDocID},
		bson.M{"$inc": bson.M{"siteVisits": 1}}, opts); err != nil {
		return err
	}
	s.publish(notify.EntityAnalytics)
	return nil
}

// ResetAnalytics deletes every counter document.
func (s *MongoStore) ResetAnalytics(ctx context.Context) error {
	if s.Counters == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	if _, err := s.Counters.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	s.publish(notify.EntityAnalytics)
	return nil
}

// Watch tails the car collection's change stream and forwards every write
// onto the notification bus. It returns once the stream is established;
// stream errors end the goroutine with a warning rather than crashing.
func (s *MongoStore) Watch(ctx context.Context) error {
	if s.Cars == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	stream, err := s.Cars.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("mongo change stream: %w", err)
	}
	go func() {
		defer stream.Close(ctx)
		for stream.Next(ctx) {
			s.publish(notify.EntityFleet)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("Fleet change stream ended")
		}
	}()
	return nil
}

func (s *MongoStore) publish(entity string) {
	if s.bus != nil {
		s.bus.Publish(entity)
	}
}
