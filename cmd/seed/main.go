package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type dbKeyType struct{}

var dbKey dbKeyType

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	// skip header row
	if _, err := r.Read(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return r, f, nil
}

// seedSuppliers loads suppliers from a CSV: id,name,phone,email
func seedSuppliers(c *cli.Context) error {
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := dbFrom(c)
	query := `
		INSERT INTO suppliers (id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			updated_at = NOW()
	`

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read supplier row: %w", err)
		}
		if len(rec) < 4 {
			return fmt.Errorf("supplier row needs 4 columns, got %d", len(rec))
		}

		if _, err := db.ExecContext(c.Context, query, rec[0], rec[1], nullIfEmpty(rec[2]), nullIfEmpty(rec[3])); err != nil {
			return fmt.Errorf("failed to upsert supplier %s: %w", rec[0], err)
		}
		count++
	}

	log.Printf("Seeded %d suppliers", count)
	return nil
}

// seedProducts loads products from a CSV: id,name,barcode,supplier_id,cost_price
func seedProducts(c *cli.Context) error {
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := dbFrom(c)
	query := `
		INSERT INTO products (id, name, barcode, supplier_id, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			barcode = EXCLUDED.barcode,
			supplier_id = EXCLUDED.supplier_id,
			cost_price = EXCLUDED.cost_price,
			updated_at = NOW()
	`

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read product row: %w", err)
		}
		if len(rec) < 5 {
			return fmt.Errorf("product row needs 5 columns, got %d", len(rec))
		}

		cost, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return fmt.Errorf("invalid cost_price %q for product %s: %w", rec[4], rec[0], err)
		}

		if _, err := db.ExecContext(c.Context, query, rec[0], rec[1], rec[2], rec[3], cost); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", rec[0], err)
		}
		count++
	}

	log.Printf("Seeded %d products", count)
	return nil
}

// seedInventory loads inventory records from a CSV:
// product_id,store_id,current_stock,minimum_stock
func seedInventory(c *cli.Context) error {
	r, f, err := openCSV(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()

	db := dbFrom(c)
	query := `
		INSERT INTO inventory_records (product_id, store_id, current_stock, minimum_stock, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (product_id, store_id) DO UPDATE SET
			current_stock = EXCLUDED.current_stock,
			minimum_stock = EXCLUDED.minimum_stock,
			updated_at = NOW()
	`

	count := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read inventory row: %w", err)
		}
		if len(rec) < 4 {
			return fmt.Errorf("inventory row needs 4 columns, got %d", len(rec))
		}

		storeID, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid store_id %q: %w", rec[1], err)
		}
		current, err := strconv.Atoi(rec[2])
		if err != nil {
			return fmt.Errorf("invalid current_stock %q: %w", rec[2], err)
		}
		minimum, err := strconv.Atoi(rec[3])
		if err != nil {
			return fmt.Errorf("invalid minimum_stock %q: %w", rec[3], err)
		}

		if _, err := db.ExecContext(c.Context, query, rec[0], storeID, current, minimum); err != nil {
			return fmt.Errorf("failed to upsert inventory for product %s: %w", rec[0], err)
		}
		count++
	}

	log.Printf("Seeded %d inventory records", count)
	return nil
}

func main() {
	_ = godotenv.Load()

	fileFlag := &cli.StringFlag{
		Name:     "file",
		Usage:    "Path to the CSV file to load",
		Required: true,
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Load catalog and ledger data into the stockroom database",
		Flags: []cli.Flag{newDBURLFlag()},
		Commands: []*cli.Command{
			{
				Name:   "suppliers",
				Usage:  "Seed suppliers from a CSV (id,name,phone,email)",
				Flags:  []cli.Flag{fileFlag},
				Before: initDB,
				After:  closeDB,
				Action: seedSuppliers,
			},
			{
				Name:   "products",
				Usage:  "Seed products from a CSV (id,name,barcode,supplier_id,cost_price)",
				Flags:  []cli.Flag{fileFlag},
				Before: initDB,
				After:  closeDB,
				Action: seedProducts,
			},
			{
				Name:   "inventory",
				Usage:  "Seed inventory records from a CSV (product_id,store_id,current_stock,minimum_stock)",
				Flags:  []cli.Flag{fileFlag},
				Before: initDB,
				After:  closeDB,
				Action: seedInventory,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
