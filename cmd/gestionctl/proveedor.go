package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	proveedorNombre    string
	proveedorTelefono  string
	proveedorDireccion string
)

var proveedorCmd = &cobra.Command{
	Use:   "proveedor",
	Short: "Registro de proveedores",
}

var proveedorAgregarCmd = &cobra.Command{
	Use:   "agregar",
	Short: "Registra un proveedor",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		p, err := e.proveedores.Add(proveedorNombre, proveedorTelefono, proveedorDireccion)
		if err != nil {
			return err
		}
		fmt.Printf("proveedor %s registrado\n", p.Nombre)
		return nil
	},
}

var proveedorListarCmd = &cobra.Command{
	Use:   "listar",
	Short: "Lista los proveedores en orden de registro",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NOMBRE\tTELÉFONO\tDIRECCIÓN")
		for _, p := range e.proveedores.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Nombre, p.Telefono, p.Direccion)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(proveedorCmd)
	proveedorCmd.AddCommand(proveedorAgregarCmd, proveedorListarCmd)

	proveedorAgregarCmd.Flags().StringVar(&proveedorNombre, "nombre", "", "nombre del proveedor")
	proveedorAgregarCmd.Flags().StringVar(&proveedorTelefono, "telefono", "", "teléfono")
	proveedorAgregarCmd.Flags().StringVar(&proveedorDireccion, "direccion", "", "dirección")
}
