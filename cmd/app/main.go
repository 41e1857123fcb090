package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/shoplane/shop-backend/internal/apperr"
	"github.com/shoplane/shop-backend/internal/config"
	"github.com/shoplane/shop-backend/internal/credential"
	"github.com/shoplane/shop-backend/internal/customer"
	"github.com/shoplane/shop-backend/internal/employee"
	"github.com/shoplane/shop-backend/internal/logger"
	"github.com/shoplane/shop-backend/internal/order"
	"github.com/shoplane/shop-backend/internal/product"
	"github.com/shoplane/shop-backend/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Dev())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	creds, err := credential.NewManager(cfg.JWTSecret)
	if err != nil {
		zlog.Fatal("credential manager", zap.Error(err))
	}

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		zlog.Fatal("schema", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.Handler(zlog, cfg.Dev()),
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Origins(),
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	uploads := upload.NewStore(cfg.UploadDir)

	customerHandler := customer.NewHandler(
		customer.NewService(customer.NewPostgresRepository(db), creds), uploads)
	employeeHandler := employee.NewHandler(
		employee.NewService(employee.NewPostgresRepository(db)))
	productHandler := product.NewHandler(
		product.NewService(product.NewPostgresRepository(db), productIDScheme(cfg)))
	orderHandler := order.NewHandler(
		order.NewService(order.NewPostgresRepository(db)))

	// routes reachable without a token
	customerHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", cfg.UploadDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: creds.Secret(),
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing or invalid token")
		},
	}))

	customerHandler.RegisterProtectedRoutes(app)
	employeeHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	zlog.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func productIDScheme(cfg config.Config) product.IDScheme {
	if cfg.ProductIDScheme == config.ProductIDRandom {
		return product.RandomIDs
	}
	return product.SequentialIDs
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureSchema creates the tables and the unique indexes the repositories rely
// on for identifier and email conflict detection. The index names are part of
// the repository contract.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			cus_id TEXT NOT NULL,
			cus_name TEXT NOT NULL,
			cus_email TEXT NOT NULL,
			cus_password TEXT NOT NULL,
			cus_phone TEXT NOT NULL,
			cus_address TEXT NOT NULL,
			cus_age INT NOT NULL,
			cus_gender TEXT NOT NULL,
			cus_profile TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS customers_cus_id_key ON customers (cus_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS customers_cus_email_key ON customers (lower(cus_email))`,
		`CREATE TABLE IF NOT EXISTS employees (
			id SERIAL PRIMARY KEY,
			emp_id TEXT NOT NULL,
			emp_name TEXT NOT NULL,
			emp_email TEXT NOT NULL,
			emp_password TEXT NOT NULL,
			emp_phone TEXT NOT NULL,
			emp_address TEXT NOT NULL,
			emp_age INT NOT NULL,
			emp_gender TEXT NOT NULL,
			emp_profile TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS employees_emp_id_key ON employees (emp_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS employees_emp_email_key ON employees (lower(emp_email))`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			p_id TEXT NOT NULL,
			p_name TEXT NOT NULL,
			p_description TEXT NOT NULL,
			p_price NUMERIC NOT NULL,
			p_quantity INT NOT NULL,
			p_category TEXT NOT NULL,
			p_image TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_p_id_key ON products (p_id)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			o_id TEXT NOT NULL,
			o_name TEXT NOT NULL,
			o_price NUMERIC NOT NULL,
			o_quantity INT NOT NULL,
			o_category TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS orders_o_id_key ON orders (o_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
