// seed crea el usuario superadmin inicial y, opcionalmente, unos artículos de
// demostración para probar la aplicación en local.
//
// Uso: go run ./cmd/seed [-demo]
// Lee SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD del entorno (con defaults de
// desarrollo) y la conexión de la configuración estándar.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
	"github.com/tu-usuario/almacen-stock/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-stock/pkg/config"
)

func main() {
	demo := flag.Bool("demo", false, "crear también artículos de demostración")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	email := envOr("SEED_ADMIN_EMAIL", "admin@almacen.local")
	password := envOr("SEED_ADMIN_PASSWORD", "cambiar-este-password")

	userRepo := postgres.NewUserRepository(pool)
	existing, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "consultar usuario: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Printf("superadmin %s ya existe, nada que hacer\n", email)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash de password: %v\n", err)
			os.Exit(1)
		}
		now := time.Now()
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        email,
			PasswordHash: string(hash),
			Username:     "superadmin",
			Role:         entity.RoleSuperadmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			fmt.Fprintf(os.Stderr, "crear superadmin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("superadmin %s creado\n", email)
	}

	if !*demo {
		return
	}

	itemStore := postgres.NewItemStore(pool)
	now := time.Now()
	items := []*entity.Item{
		{ID: "A1", EAN: "4006381333931", Name: "Tornillo M4 x 20", Shelf: "A", Box: "1", Amount: 150, MinAmount: 50, CreatedAt: now, UpdatedAt: now},
		{ID: "A2", EAN: "4006381333948", Name: "Tuerca M4", Shelf: "A", Box: "2", Amount: 200, MinAmount: 80, CreatedAt: now, UpdatedAt: now},
		{ID: "B1", EAN: "4006381333955", Name: "Arandela 4mm", Shelf: "B", Box: "1", Amount: 40, MinAmount: 100, CreatedAt: now, UpdatedAt: now},
		{ID: "C3", EAN: "", Name: "Brida 200mm", Shelf: "C", Box: "3", Amount: 75, MinAmount: 25, CreatedAt: now, UpdatedAt: now},
	}
	for _, it := range items {
		existing, err := itemStore.Get(ctx, it.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "consultar artículo %s: %v\n", it.ID, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("artículo %s ya existe, se omite\n", it.ID)
			continue
		}
		if err := itemStore.Create(ctx, it); err != nil {
			fmt.Fprintf(os.Stderr, "crear artículo %s: %v\n", it.ID, err)
			os.Exit(1)
		}
		fmt.Printf("artículo %s (%s) creado\n", it.ID, it.Name)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
