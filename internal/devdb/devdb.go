// Package devdb starts throwaway database containers (and optionally an Authorizer) for
// local development and integration tests.
package devdb

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
	"github.com/localnerve/glucodb/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Options describe the containers to start. Field tags name the environment variables
// read by OptionsFromEnv.
type Options struct {
	DBType       string `envconfig:"DB_TYPE" default:"mariadb"`
	DBImage      string `envconfig:"DB_IMAGE" default:"mariadb:11"`
	DBPort       string `envconfig:"DB_PORT" default:"3306"`
	DBDatabase   string `envconfig:"DB_DATABASE" default:"glucodb"`
	DBUser       string `envconfig:"DB_USER" default:"glucodb"`
	DBPassword   string `envconfig:"DB_PASSWORD" default:"glucodb"`
	RootPassword string `envconfig:"DB_ROOT_PASSWORD" default:"root"`

	// HostPort pins the database to a fixed localhost port instead of a random one
	HostPort string `envconfig:"DEVDB_HOST_PORT"`

	Authorizer       bool   `envconfig:"DEVDB_AUTHORIZER" default:"false"`
	AuthzImage       string `envconfig:"AUTHZ_IMAGE" default:"lakhansamani/authorizer:latest"`
	AuthzPort        string `envconfig:"AUTHZ_PORT" default:"8080"`
	AuthzDatabase    string `envconfig:"AUTHZ_DATABASE" default:"authorizer"`
	AuthzClientID    string `envconfig:"AUTHZ_CLIENT_ID" default:"glucodb-dev"`
	AuthzAdminSecret string `envconfig:"AUTHZ_ADMIN_SECRET" default:"admin"`

	Debug bool `envconfig:"DEBUG_CONTAINER" default:"false"`
}

// OptionsFromEnv reads Options from the environment, filling defaults
func OptionsFromEnv() (Options, error) {
	var opts Options
	if err := envconfig.Process("", &opts); err != nil {
		return opts, errors.Wrap(err, "failed to parse devdb environment")
	}
	return opts, nil
}

// DefaultOptions returns the defaults without consulting the environment
func DefaultOptions() Options {
	return Options{
		DBType:           "mariadb",
		DBImage:          "mariadb:11",
		DBPort:           "3306",
		DBDatabase:       "glucodb",
		DBUser:           "glucodb",
		DBPassword:       "glucodb",
		RootPassword:     "root",
		AuthzImage:       "lakhansamani/authorizer:latest",
		AuthzPort:        "8080",
		AuthzDatabase:    "authorizer",
		AuthzClientID:    "glucodb-dev",
		AuthzAdminSecret: "admin",
	}
}

// Containers are the running containers and how to reach them from the host
type Containers struct {
	Network    *testcontainers.DockerNetwork
	DB         testcontainers.Container
	Authorizer testcontainers.Container

	DBHost   string
	DBPort   nat.Port
	AuthzURL string

	opts Options
}

// Config returns a service configuration pointing at the started containers
func (c *Containers) Config() *config.Config {
	cfg := &config.Config{
		Port:              "3000",
		LogLevel:          "info",
		DBType:            c.opts.DBType,
		DBHost:            c.DBHost,
		DBPort:            c.DBPort.Port(),
		DBDatabase:        c.opts.DBDatabase,
		DBUser:            c.opts.DBUser,
		DBPassword:        c.opts.DBPassword,
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		AuthMode:          "jwt",
		JWTSecret:         "devdb-secret",
		SeedData:          true,
	}
	if c.AuthzURL != "" {
		cfg.AuthMode = "authorizer"
		cfg.AuthzURL = c.AuthzURL
		cfg.AuthzClientID = c.opts.AuthzClientID
	}
	return cfg
}

// Env renders Config as the environment variables the server reads
func (c *Containers) Env() map[string]string {
	cfg := c.Config()
	env := map[string]string{
		"DB_TYPE":     cfg.DBType,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_DATABASE": cfg.DBDatabase,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"AUTH_MODE":   cfg.AuthMode,
	}
	if cfg.AuthMode == "authorizer" {
		env["AUTHZ_URL"] = cfg.AuthzURL
		env["AUTHZ_CLIENT_ID"] = cfg.AuthzClientID
	} else {
		env["JWT_SECRET"] = cfg.JWTSecret
	}
	return env
}

// Terminate stops every started container and removes the network
func (c *Containers) Terminate(ctx context.Context) error {
	var errs []error
	if c.Authorizer != nil {
		if err := c.Authorizer.Terminate(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to terminate Authorizer"))
		}
	}
	if c.DB != nil {
		if err := c.DB.Terminate(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to terminate database"))
		}
	}
	if c.Network != nil {
		if err := c.Network.Remove(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to remove network"))
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Start creates a network, starts the database and, when asked, an Authorizer that
// stores its users in the same database server. Partially started containers are
// terminated on failure.
func Start(ctx context.Context, opts Options, log zerolog.Logger) (*Containers, error) {
	c := &Containers{opts: opts}

	fail := func(err error, msg string) (*Containers, error) {
		if terr := c.Terminate(context.Background()); terr != nil {
			log.Warn().Err(terr).Msg("Cleanup after failed start")
		}
		return nil, errors.Wrap(err, msg)
	}

	if opts.Authorizer && !isMySQL(opts.DBType) {
		return nil, errors.Errorf("the Authorizer container needs mariadb or mysql, not %s", opts.DBType)
	}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create network")
	}
	c.Network = nw

	if exists, err := ImageExists(ctx, opts.DBImage); err != nil {
		log.Debug().Err(err).Msg("Could not inspect local images")
	} else if !exists {
		log.Info().Str("image", opts.DBImage).Msg("Pulling database image")
	}

	dbPort, err := nat.NewPort("tcp", opts.DBPort)
	if err != nil {
		return fail(err, "invalid DB_PORT")
	}
	dbAlias := "db"

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:              opts.DBImage,
			ExposedPorts:       []string{string(dbPort)},
			Env:                dbEnv(opts),
			HostConfigModifier: hostConfigModifier(opts, dbPort),
			WaitingFor:         wait.ForListeningPort(dbPort).WithStartupTimeout(90 * time.Second),
			Networks:           []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {dbAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		return fail(err, "failed to start database")
	}
	c.DB = dbContainer

	if c.DBHost, err = dbContainer.Host(ctx); err != nil {
		return fail(err, "failed to read database host")
	}
	if c.DBPort, err = dbContainer.MappedPort(ctx, dbPort); err != nil {
		return fail(err, "failed to read database port")
	}
	log.Info().Str("host", c.DBHost).Str("port", c.DBPort.Port()).Str("type", opts.DBType).Msg("Database container started")

	if !opts.Authorizer {
		return c, nil
	}

	if err := createDatabase(ctx, opts, c.DBHost, c.DBPort, opts.AuthzDatabase); err != nil {
		return fail(err, "failed to prepare Authorizer database")
	}

	authzPort, err := nat.NewPort("tcp", opts.AuthzPort)
	if err != nil {
		return fail(err, "invalid AUTHZ_PORT")
	}
	authzLogLevel := "info"
	if opts.Debug {
		authzLogLevel = "debug"
	}
	authzDSN := gomysql.NewConfig()
	authzDSN.User = "root"
	authzDSN.Passwd = opts.RootPassword
	authzDSN.Net = "tcp"
	authzDSN.Addr = net.JoinHostPort(dbAlias, opts.DBPort)
	authzDSN.DBName = opts.AuthzDatabase

	authorizer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.AuthzImage,
			ExposedPorts: []string{string(authzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     opts.AuthzClientID,
				"PORT":          opts.AuthzPort,
				"DATABASE_TYPE": opts.DBType,
				"DATABASE_NAME": opts.AuthzDatabase,
				"DATABASE_URL":  authzDSN.FormatDSN(),
				"ADMIN_SECRET":  opts.AuthzAdminSecret,
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     authzLogLevel,
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"authorizer"},
			},
		},
		Started: true,
	})
	if err != nil {
		return fail(err, "failed to start Authorizer")
	}
	c.Authorizer = authorizer

	authzHost, err := authorizer.Host(ctx)
	if err != nil {
		return fail(err, "failed to read Authorizer host")
	}
	mapped, err := authorizer.MappedPort(ctx, authzPort)
	if err != nil {
		return fail(err, "failed to read Authorizer port")
	}
	c.AuthzURL = "http://" + net.JoinHostPort(authzHost, mapped.Port())
	log.Info().Str("url", c.AuthzURL).Msg("Authorizer container started")

	return c, nil
}

// ImageExists reports whether the image is already present in the local Docker daemon
func ImageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func isMySQL(dbType string) bool {
	return dbType == "mariadb" || dbType == "mysql"
}

func dbEnv(opts Options) map[string]string {
	switch opts.DBType {
	case "postgres", "postgresql":
		return map[string]string{
			"POSTGRES_PASSWORD": opts.DBPassword,
			"POSTGRES_USER":     opts.DBUser,
			"POSTGRES_DB":       opts.DBDatabase,
		}
	default:
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": opts.RootPassword,
			"MYSQL_DATABASE":      opts.DBDatabase,
			"MYSQL_USER":          opts.DBUser,
			"MYSQL_PASSWORD":      opts.DBPassword,
		}
	}
}

func hostConfigModifier(opts Options, port nat.Port) func(*container.HostConfig) {
	return func(hostConfig *container.HostConfig) {
		if opts.HostPort != "" {
			hostConfig.PortBindings = nat.PortMap{
				port: []nat.PortBinding{
					{HostIP: "127.0.0.1", HostPort: opts.HostPort},
				},
			}
		}
	}
}

// createDatabase connects as root and creates name when missing
func createDatabase(ctx context.Context, opts Options, host string, port nat.Port, name string) error {
	mc := gomysql.NewConfig()
	mc.User = "root"
	mc.Passwd = opts.RootPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, port.Port())

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	// The port listens before the server accepts logins
	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return errors.Wrap(err, "database not ready after 30 seconds")
	}

	if _, err := db.ExecContext(ctx, "CREATE DATABASE IF NOT EXISTS `"+name+"`"); err != nil {
		return errors.Wrapf(err, "failed to create %s", name)
	}
	return nil
}
