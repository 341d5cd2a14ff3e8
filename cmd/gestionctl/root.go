package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-stock/internal/application/adjust"
	"github.com/jhoicas/gestion-stock/internal/application/auth"
	"github.com/jhoicas/gestion-stock/internal/application/catalog"
	"github.com/jhoicas/gestion-stock/internal/application/sales"
	"github.com/jhoicas/gestion-stock/internal/application/supplier"
	"github.com/jhoicas/gestion-stock/internal/infrastructure/jsonstore"
	"github.com/jhoicas/gestion-stock/pkg/config"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gestionctl",
	Short: "Gestión de stock para comercio minorista",
	Long: `gestionctl opera el motor de gestión de stock: cuentas y roles,
catálogo de productos con alertas de stock bajo, ventas atómicas contra el
inventario y registro de proveedores. Los datos viven en archivos JSON
planos (usuarios.json, productos.json, ventas.json, proveedores.json) en el
directorio configurado vía DATA_DIR.`,
}

// Execute corre el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// engine agrupa los servicios del motor ya cableados.
type engine struct {
	cfg         *config.Config
	log         *logger.Logger
	auth        *auth.Service
	catalogo    *catalog.Service
	ventas      *sales.Service
	proveedores *supplier.Service
	ajuste      *adjust.Controller
}

// buildEngine carga configuración y construye repositorios y servicios en el
// mismo orden que las dependencias: persistencia, catálogo, ventas, resto.
func buildEngine() (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	usuarioRepo := jsonstore.NewUsuarioRepository(cfg.Datos.Dir, log)
	productoRepo := jsonstore.NewProductoRepository(cfg.Datos.Dir, log)
	ventaRepo := jsonstore.NewVentaRepository(cfg.Datos.Dir, log)
	proveedorRepo := jsonstore.NewProveedorRepository(cfg.Datos.Dir, log)

	var margen *decimal.Decimal
	if cfg.Motor.MargenMinimo >= 0 {
		m := decimal.NewFromFloat(cfg.Motor.MargenMinimo)
		margen = &m
	}

	catalogo := catalog.NewService(productoRepo, catalog.Config{MargenMinimo: margen}, log)
	return &engine{
		cfg:         cfg,
		log:         log,
		auth:        auth.NewService(usuarioRepo, auth.Config{LoginPolicy: cfg.Motor.LoginPolicy}, log),
		catalogo:    catalogo,
		ventas:      sales.NewService(ventaRepo, catalogo, log),
		proveedores: supplier.NewService(proveedorRepo),
		ajuste:      adjust.NewController(catalogo, log),
	}, nil
}
