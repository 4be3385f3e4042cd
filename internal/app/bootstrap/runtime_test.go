package bootstrap

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/wolfman30/doctor-finder/internal/assistant"
	appconfig "github.com/wolfman30/doctor-finder/internal/config"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/ingest"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

func TestBuildRedisClientDisabled(t *testing.T) {
	if client := BuildRedisClient(context.Background(), &appconfig.Config{}, nil, true); client != nil {
		t.Fatalf("expected nil client without REDIS_ADDR")
	}
}

func TestBuildRedisClientVerifies(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &appconfig.Config{RedisAddr: mr.Addr()}

	client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true)
	if client == nil {
		t.Fatalf("expected client for a live redis")
	}
	t.Cleanup(func() { _ = client.Close() })

	if _, ok := BuildSessionStore(client, cfg).(*assistant.RedisSessionStore); !ok {
		t.Fatalf("expected redis session store")
	}

	mr.Close()
	if client := BuildRedisClient(context.Background(), cfg, logging.New("error"), true); client != nil {
		t.Fatalf("expected nil client when ping fails")
	}
}

func TestBuildSessionStoreMemoryFallback(t *testing.T) {
	store := BuildSessionStore(nil, &appconfig.Config{SessionTTL: time.Hour})
	if _, ok := store.(*assistant.MemorySessionStore); !ok {
		t.Fatalf("expected memory session store, got %T", store)
	}
}

func TestBuildDoctorStoreWithoutDatabase(t *testing.T) {
	store, pool, err := BuildDoctorStore(context.Background(), &appconfig.Config{}, logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool != nil {
		t.Fatalf("expected no pool")
	}
	if _, ok := store.(*doctors.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}

func TestBuildSourceSelection(t *testing.T) {
	ctx := context.Background()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	src, err := BuildSource(ctx, &appconfig.Config{DataDir: "/data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src == nil || src.Describe() != "dir:/data" {
		t.Fatalf("expected dir source, got %v", src)
	}

	src, err = BuildSource(ctx, &appconfig.Config{
		DataDir:            "/data",
		DataBucket:         "doctor-files",
		DataPrefix:         "pk/",
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "test",
		AWSSecretAccessKey: "test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*ingest.S3Source); !ok {
		t.Fatalf("expected s3 source, got %T", src)
	}

	src, err = BuildSource(ctx, &appconfig.Config{})
	if err != nil || src != nil {
		t.Fatalf("expected no source, got %v, %v", src, err)
	}
}

func TestShouldImport(t *testing.T) {
	ctx := context.Background()
	empty := doctors.NewMemoryStore()
	full := doctors.NewMemoryStore()
	if _, err := full.Replace(ctx, []doctors.Doctor{{Name: "Dr. A", Specialty: doctors.SpecialtyUrologist, City: doctors.CityLahore}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	src := ingest.NewDirSource(t.TempDir())

	tests := []struct {
		name   string
		cfg    *appconfig.Config
		store  doctors.Store
		source ingest.Source
		want   bool
	}{
		{"no source", &appconfig.Config{ImportOnStartup: true}, empty, nil, false},
		{"empty store", &appconfig.Config{}, empty, src, true},
		{"loaded store", &appconfig.Config{}, full, src, false},
		{"forced", &appconfig.Config{ImportOnStartup: true}, full, src, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShouldImport(ctx, tt.cfg, tt.store, tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBuildLLMClient(t *testing.T) {
	if _, _, err := BuildLLMClient(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}

	client, closeFn, err := BuildLLMClient(context.Background(), &appconfig.Config{}, logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()
	if client != nil {
		t.Fatalf("expected no client without credentials, got %T", client)
	}
}
