package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	StorageDisk   = "disk"
	StorageMemory = "memory"
)

// Server is the root of the service config file.
type Server struct {
	API    Api    `yaml:"api"`
	Upload Upload `yaml:"upload"`
	Auth   Auth   `yaml:"auth"`
	CORS   CORS   `yaml:"cors"`
}

type Api struct {
	HTTPAddr string `yaml:"http_addr"`
}

type Upload struct {
	Route        string   `yaml:"route"`
	PublicPath   string   `yaml:"public_path"`
	FieldName    string   `yaml:"field_name"`
	Destination  string   `yaml:"destination"`
	Extensions   []string `yaml:"extensions"`
	MaxSizeBytes int64    `yaml:"max_size_bytes"`
	Storage      string   `yaml:"storage"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type CORS struct {
	Whitelist []string `yaml:"whitelist"`
}

// Default returns the config used when no file is given.
func Default() Server {
	return Server{
		API: Api{HTTPAddr: "0.0.0.0:3000"},
		Upload: Upload{
			Route:       "/imageUpload",
			PublicPath:  "/images",
			FieldName:   "imageFile",
			Destination: "public/images",
			Extensions:  []string{"jpg", "jpeg", "png", "gif"},
			Storage:     StorageDisk,
		},
		CORS: CORS{
			Whitelist: []string{"http://localhost:3000", "https://localhost:3443"},
		},
	}
}

// Parse reads the YAML file at path on top of Default. An empty path yields
// the defaults. JWT_SECRET from the environment wins over the file.
func Parse(path string) (Server, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("can't read config file: %w", err)
		}

		if err = yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("can't unmarshal config: %w", err)
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	return cfg, nil
}

func (s Server) Validate() error {
	if s.API.HTTPAddr == "" {
		return errors.New("api.http_addr is required")
	}

	if s.Upload.Route == "" || s.Upload.Route[0] != '/' {
		return fmt.Errorf("upload.route must start with '/', got %q", s.Upload.Route)
	}

	if s.Upload.PublicPath == "" || s.Upload.PublicPath[0] != '/' {
		return fmt.Errorf("upload.public_path must start with '/', got %q", s.Upload.PublicPath)
	}

	if s.Upload.FieldName == "" {
		return errors.New("upload.field_name is required")
	}

	if s.Upload.Destination == "" {
		return errors.New("upload.destination is required")
	}

	if s.Upload.MaxSizeBytes < 0 {
		return errors.New("upload.max_size_bytes can't be negative")
	}

	switch s.Upload.Storage {
	case StorageDisk, StorageMemory:
	default:
		return fmt.Errorf("unknown upload.storage %q", s.Upload.Storage)
	}

	if s.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (or set JWT_SECRET)")
	}

	return nil
}
