package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// PostgresSettings, RedisSettings and KafkaSettings are nested under the
// DB_, REDIS_ and KAFKA_ prefixes. Their fields carry no envconfig name so a
// missing DB_PORT never falls back to a bare PORT variable.
type PostgresSettings struct {
	Host            string        `default:"localhost"`
	Port            string        `default:"5432"`
	Name            string        `default:"reviews"`
	User            string        `default:"postgres"`
	Password        string
	SSLMode         string        `default:"disable"`
	MaxOpenConns    int           `split_words:"true" default:"25"`
	MaxIdleConns    int           `split_words:"true" default:"5"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"1h"`
}

func (s PostgresSettings) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode)
}

type RedisSettings struct {
	Host     string `default:"localhost"`
	Port     string `default:"6379"`
	Password string
	Database int `default:"0"`
}

func (s RedisSettings) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// KafkaSettings.Brokers is a comma separated KAFKA_BROKERS list.
type KafkaSettings struct {
	Brokers []string `default:"localhost:9092"`
}

type Settings struct {
	HTTPAddr      string        `envconfig:"HTTP_ADDR" default:":8082"`
	StoreDriver   string        `envconfig:"STORE_DRIVER" default:"postgres"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	PublicBaseURL string        `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	EventsTopic   string        `envconfig:"KAFKA_EVENTS_TOPIC" default:"reviews"`
	IdentityTopic string        `envconfig:"KAFKA_IDENTITY_TOPIC" default:"identity-events"`
	ConsumerGroup string        `envconfig:"KAFKA_CONSUMER_GROUP" default:"review-svc"`
	EnableKafka   bool          `envconfig:"ENABLE_KAFKA" default:"true"`
	EnableRedis   bool          `envconfig:"ENABLE_REDIS" default:"true"`
	MarkerTTL     time.Duration `envconfig:"SUBMISSION_MARKER_TTL" default:"24h"`

	Postgres PostgresSettings `envconfig:"DB"`
	Redis    RedisSettings    `envconfig:"REDIS"`
	Kafka    KafkaSettings    `envconfig:"KAFKA"`
}

func Load() (Settings, error) {
	var s Settings
	err := envconfig.Process("", &s)
	return s, err
}

type GatewaySettings struct {
	HTTPAddr     string        `envconfig:"GATEWAY_ADDR" default:":8080"`
	ReviewSvcURL string        `envconfig:"REVIEW_SVC_URL" default:"http://localhost:8082"`
	FrontendDir  string        `envconfig:"FRONTEND_DIR" default:"./frontend"`
	ProxyTimeout time.Duration `envconfig:"PROXY_TIMEOUT" default:"15s"`
}

func LoadGateway() (GatewaySettings, error) {
	var s GatewaySettings
	err := envconfig.Process("", &s)
	return s, err
}

type AggregatorSettings struct {
	EventsTopic   string        `envconfig:"KAFKA_EVENTS_TOPIC" default:"reviews"`
	ConsumerGroup string        `envconfig:"KAFKA_CONSUMER_GROUP" default:"agg-svc-consumer"`
	SnapshotTTL   time.Duration `envconfig:"RATING_SNAPSHOT_TTL" default:"24h"`

	Postgres PostgresSettings `envconfig:"DB"`
	Redis    RedisSettings    `envconfig:"REDIS"`
	Kafka    KafkaSettings    `envconfig:"KAFKA"`
}

func LoadAggregator() (AggregatorSettings, error) {
	var s AggregatorSettings
	err := envconfig.Process("", &s)
	return s, err
}

func MustInitPostgres(s PostgresSettings) *sql.DB {
	db, err := sql.Open("postgres", s.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(s.MaxOpenConns)
	db.SetMaxIdleConns(s.MaxIdleConns)
	db.SetConnMaxLifetime(s.ConnMaxLifetime)

	return db
}

func MustInitRedis(s RedisSettings) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     s.Addr(),
		Password: s.Password,
		DB:       s.Database,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(s KafkaSettings, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: s.Brokers,
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(s KafkaSettings, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(s.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
