package config

import "testing"

func validConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			HTTPListen: ":8080",
			LogLevel:   "info",
		},
		Compose: ComposeConfig{
			DefaultCollectorBGPID: "0.0.0.0",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidate_NoHTTPListen(t *testing.T) {
	cfg := validConfig()
	cfg.Service.HTTPListen = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty http_listen")
	}
}

func TestValidate_KafkaEnabledRequiresBrokersAndTopic(t *testing.T) {
	cfg := validConfig()
	cfg.Sink.Kafka.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled kafka sink with no brokers/topic")
	}

	cfg.Sink.Kafka.Brokers = []string{"localhost:9092"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled kafka sink with no topic")
	}

	cfg.Sink.Kafka.Topic = "mrt-records"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}
