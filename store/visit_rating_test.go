package store

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/misioncampo/visitas-api/schema"
)

type VisitRatingTestSuite struct {
	suite.Suite
	connURI     string
	testDBName  string
	mongoClient *mongo.Client
}

func NewVisitRatingTestSuite(connURI, dbName string) *VisitRatingTestSuite {
	return &VisitRatingTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *VisitRatingTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient

	if err := mongoClient.Database(s.testDBName).Drop(context.Background()); err != nil {
		s.T().Fatal(err)
	}

	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
}

func (s *VisitRatingTestSuite) ratingFor(visitID, churchID string, stars int) schema.VisitRatingRecord {
	return schema.VisitRatingRecord{
		ChurchID:  churchID,
		VisitDate: time.Now().UTC().AddDate(0, 0, -1),
		Input: schema.VisitRatingInput{
			VisitID:            visitID,
			RaterID:            "missionary-1",
			MissionOpenness:    stars,
			Hospitality:        stars,
			OfferingAmount:     100,
			ChurchMemberCount:  30,
			VisitAttendeeCount: 25,
		},
		Calculated: schema.CalculatedRating{Stars: stars},
	}
}

func (s *VisitRatingTestSuite) TestCreateVisitRatingEnforcesRateOnce() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	created, err := store.CreateVisitRating(s.ratingFor("visit-once", "church-1", 4))
	s.NoError(err)
	s.False(created.ID.IsZero())
	s.False(created.CreatedAt.IsZero())

	_, err = store.CreateVisitRating(s.ratingFor("visit-once", "church-1", 2))
	s.Equal(ErrRatingExists, err)
}

func (s *VisitRatingTestSuite) TestGetRatingByVisit() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	_, err := store.CreateVisitRating(s.ratingFor("visit-get", "church-1", 5))
	s.NoError(err)

	record, err := store.GetRatingByVisit("visit-get")
	s.NoError(err)
	s.Equal(5, record.Calculated.Stars)

	_, err = store.GetRatingByVisit("visit-missing")
	s.Equal(ErrRatingNotFound, err)
}

func (s *VisitRatingTestSuite) TestFetchRatingsForChurchSortedByDate() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	older := s.ratingFor("visit-a", "church-sorted", 3)
	older.VisitDate = time.Now().UTC().AddDate(0, 0, -10)
	newer := s.ratingFor("visit-b", "church-sorted", 5)
	newer.VisitDate = time.Now().UTC().AddDate(0, 0, -1)

	_, err := store.CreateVisitRating(newer)
	s.NoError(err)
	_, err = store.CreateVisitRating(older)
	s.NoError(err)

	records, err := store.FetchRatingsForChurch("church-sorted")
	s.NoError(err)
	s.Len(records, 2)
	s.Equal("visit-a", records[0].Input.VisitID)
	s.Equal("visit-b", records[1].Input.VisitID)
}

func TestVisitRatingStore(t *testing.T) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("visitas")

	connURI := viper.GetString("test_mongo_conn")
	if connURI == "" {
		t.Skip("mongo integration test requires VISITAS_TEST_MONGO_CONN")
	}

	suite.Run(t, NewVisitRatingTestSuite(connURI, "test_visit_rating"))
}
