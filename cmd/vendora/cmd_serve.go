package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vendora/vendora/app/controllers"
	"github.com/vendora/vendora/app/routes"
	"github.com/vendora/vendora/internal/server"
	"github.com/vendora/vendora/pkg/router"
)

// vendora serve starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// vendora route:list prints all registered routes without booting
// the database; handlers are registered but never invoked.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r, routes.Controllers{
			Auth:       &controllers.AuthController{},
			Vendors:    &controllers.VendorController{},
			Products:   &controllers.ProductController{},
			Categories: &controllers.CategoryController{},
			Blogs:      &controllers.BlogController{},
		})

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
