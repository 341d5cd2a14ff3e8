package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-stock/internal/domain/entity"
)

var (
	productoCodigo    string
	productoNombre    string
	productoCategoria string
	productoCosto     float64
	productoPrecio    float64
	productoStock     int
	productoAlerta    int
	productoDelta     int
	mantenerDireccion int
	mantenerDurante   time.Duration
)

var productoCmd = &cobra.Command{
	Use:   "producto",
	Short: "Catálogo de productos",
}

var productoAgregarCmd = &cobra.Command{
	Use:   "agregar",
	Short: "Da de alta un producto",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		p, err := e.catalogo.Add(productoCodigo, productoNombre, productoCategoria,
			decimal.NewFromFloat(productoCosto), decimal.NewFromFloat(productoPrecio),
			productoStock, productoAlerta)
		if err != nil {
			return err
		}
		fmt.Printf("producto %s agregado (margen %s%%)\n", p.Codigo, p.MargenGanancia().StringFixed(2))
		return nil
	},
}

var productoAjustarCmd = &cobra.Command{
	Use:   "ajustar",
	Short: "Suma o resta unidades de stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		stock, err := e.catalogo.AdjustStock(productoCodigo, productoDelta)
		if err != nil {
			return err
		}
		fmt.Printf("stock de %s: %d\n", productoCodigo, stock)
		return nil
	},
}

var productoMantenerCmd = &cobra.Command{
	Use:   "mantener",
	Short: "Ajusta de a una unidad en repetición acelerada durante un intervalo",
	Long: `Simula mantener presionado el botón +/- del inventario: un ajuste
inmediato y luego ticks cada vez más rápidos hasta soltar (fin del
intervalo).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.ajuste.Start(productoCodigo, mantenerDireccion); err != nil {
			return err
		}
		time.Sleep(mantenerDurante)
		e.ajuste.Stop()
		return nil
	},
}

var productoAlertaCmd = &cobra.Command{
	Use:   "alerta",
	Short: "Fija el umbral de alerta de stock bajo",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.catalogo.SetAlertThreshold(productoCodigo, productoAlerta); err != nil {
			return err
		}
		fmt.Printf("alerta de %s fijada en %d\n", productoCodigo, productoAlerta)
		return nil
	},
}

var productoEliminarCmd = &cobra.Command{
	Use:   "eliminar",
	Short: "Elimina un producto del catálogo",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.catalogo.Remove(productoCodigo); err != nil {
			return err
		}
		fmt.Printf("producto %s eliminado\n", productoCodigo)
		return nil
	},
}

var productoListarCmd = &cobra.Command{
	Use:   "listar",
	Short: "Lista el catálogo completo",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		return imprimirProductos(e.catalogo.List())
	},
}

var productoStockBajoCmd = &cobra.Command{
	Use:   "stock-bajo",
	Short: "Lista los productos en condición de alerta",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		return imprimirProductos(e.catalogo.LowStock())
	},
}

func imprimirProductos(productos []*entity.Producto) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CÓDIGO\tNOMBRE\tCATEGORÍA\tCOSTO\tPRECIO\tSTOCK\tALERTA\tMARGEN")
	for _, p := range productos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s%%\n",
			p.Codigo, p.Nombre, p.Categoria,
			p.Costo.StringFixed(2), p.Precio.StringFixed(2),
			p.Stock, p.StockMinimo, p.MargenGanancia().StringFixed(2))
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(productoCmd)
	productoCmd.AddCommand(productoAgregarCmd, productoAjustarCmd, productoMantenerCmd,
		productoAlertaCmd, productoEliminarCmd, productoListarCmd, productoStockBajoCmd)

	for _, c := range []*cobra.Command{productoAgregarCmd, productoAjustarCmd, productoMantenerCmd,
		productoAlertaCmd, productoEliminarCmd} {
		c.Flags().StringVar(&productoCodigo, "codigo", "", "código del producto")
	}
	productoAgregarCmd.Flags().StringVar(&productoNombre, "nombre", "", "nombre")
	productoAgregarCmd.Flags().StringVar(&productoCategoria, "categoria", "", "categoría")
	productoAgregarCmd.Flags().Float64Var(&productoCosto, "costo", 0, "costo unitario")
	productoAgregarCmd.Flags().Float64Var(&productoPrecio, "precio", 0, "precio de venta")
	productoAgregarCmd.Flags().IntVar(&productoStock, "stock", 0, "stock inicial")
	productoAgregarCmd.Flags().IntVar(&productoAlerta, "alerta", entity.StockMinimoDefecto, "umbral de alerta")
	productoAjustarCmd.Flags().IntVar(&productoDelta, "delta", 0, "unidades a sumar (negativo resta)")
	productoMantenerCmd.Flags().IntVar(&mantenerDireccion, "direccion", 1, "+1 incrementa, -1 decrementa")
	productoMantenerCmd.Flags().DurationVar(&mantenerDurante, "durante", 500*time.Millisecond, "tiempo presionado")
	productoAlertaCmd.Flags().IntVar(&productoAlerta, "minimo", entity.StockMinimoDefecto, "umbral nuevo")
}
