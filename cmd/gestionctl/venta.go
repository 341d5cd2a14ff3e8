package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-stock/internal/domain/entity"
)

var (
	ventaProducto string
	ventaCantidad int
)

var ventaCmd = &cobra.Command{
	Use:   "venta",
	Short: "Libro de ventas",
}

var ventaRegistrarCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Registra una venta y descuenta stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		v, err := e.ventas.RecordSale(ventaProducto, ventaCantidad)
		if err != nil {
			return err
		}
		fmt.Printf("venta registrada: %d × %s = $%s\n", v.Cantidad, v.Producto, v.Total.StringFixed(2))
		return nil
	},
}

var ventaTotalesCmd = &cobra.Command{
	Use:   "totales",
	Short: "Muestra ventas totales y ticket promedio",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		total, promedio := e.ventas.Totals()
		fmt.Printf("ventas totales: $%s\nticket promedio: $%s\n", total.StringFixed(2), promedio.StringFixed(2))
		return nil
	},
}

var ventaBuscarCmd = &cobra.Command{
	Use:   "buscar [texto]",
	Short: "Filtra el historial (sin distinguir mayúsculas ni acentos)",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		var ventas []*entity.Venta
		if len(args) == 0 {
			ventas = e.ventas.List()
		} else {
			ventas = e.ventas.Search(strings.Join(args, " "))
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FECHA\tPRODUCTO\tCANTIDAD\tTOTAL")
		for _, v := range ventas {
			fmt.Fprintf(w, "%s\t%s\t%d\t$%s\n",
				v.Fecha.Format(entity.FormatoFechaVenta), v.Producto, v.Cantidad, v.Total.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(ventaCmd)
	ventaCmd.AddCommand(ventaRegistrarCmd, ventaTotalesCmd, ventaBuscarCmd)

	ventaRegistrarCmd.Flags().StringVar(&ventaProducto, "producto", "", "nombre o código del producto")
	ventaRegistrarCmd.Flags().IntVar(&ventaCantidad, "cantidad", 0, "unidades vendidas")
}
