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

// GlobalStatsTestSuite runs against its own database so the totals stay
// deterministic. Test order matters: the empty-database case must run
// before any row is seeded, which the names guarantee.
type GlobalStatsTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewGlobalStatsTestSuite(connURI, dbName string) *GlobalStatsTestSuite {
	return &GlobalStatsTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *GlobalStatsTestSuite) SetupSuite() {
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
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}

	schema.NewMongoDBIndexer(s.connURI, s.testDBName).IndexAll()
}

func (s *GlobalStatsTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *GlobalStatsTestSuite) TestEmptyDatabase() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	stats, err := store.QueryGlobalRatingStats()
	s.NoError(err)
	s.NotNil(stats)
	s.Equal(int64(0), stats.ChurchCount)
	s.Equal(0.0, stats.MeanRating)
	s.Equal(int64(0), stats.TotalVisits)
	s.Equal(0.0, stats.TotalOfferings)
	s.NotNil(stats.RatingHistogram)
	s.Len(stats.RatingHistogram, 0)
}

func (s *GlobalStatsTestSuite) TestSeededStatistics() {
	store := NewMongoStore(s.mongoClient, s.testDBName)

	now := time.Now().UTC()
	rows := []schema.ChurchRatingSummary{
		{ChurchID: "stats-a", AverageStars: 4.6, TotalVisits: 10, TotalOfferings: 500, RecalculatedAt: now},
		{ChurchID: "stats-b", AverageStars: 4.2, TotalVisits: 4, TotalOfferings: 200, RecalculatedAt: now},
		{ChurchID: "stats-c", AverageStars: 2.1, TotalVisits: 6, TotalOfferings: 100, RecalculatedAt: now},
		{ChurchID: "stats-empty", AverageStars: 0, TotalVisits: 0, RecalculatedAt: now},
	}
	for _, row := range rows {
		s.NoError(store.UpsertChurchSummary(row))
	}

	stats, err := store.QueryGlobalRatingStats()
	s.NoError(err)
	s.NotNil(stats)

	// churches with no visits are invisible to the dashboard
	s.Equal(int64(3), stats.ChurchCount)
	s.InDelta((4.6+4.2+2.1)/3, stats.MeanRating, 1e-9)
	s.Equal(int64(20), stats.TotalVisits)
	s.Equal(800.0, stats.TotalOfferings)

	// histogram buckets group on the rounded star average
	s.Equal(map[int]int64{5: 1, 4: 1, 2: 1}, stats.RatingHistogram)
}

func TestGlobalStatsStore(t *testing.T) {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("visitas")

	connURI := viper.GetString("test_mongo_conn")
	if connURI == "" {
		t.Skip("mongo integration test requires VISITAS_TEST_MONGO_CONN")
	}

	suite.Run(t, NewGlobalStatsTestSuite(connURI, "test_global_stats"))
}
