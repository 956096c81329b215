package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/factorykit/planner/pkg/interfaces/client"
)

func main() {
	var (
		server  = flag.String("server", envOr("PLANNER_SERVER", "http://localhost:8080"), "Planner API base URL")
		timeout = flag.Duration("timeout", 10*time.Second, "Request timeout")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	api := client.New(*server)

	var err error
	switch flag.Arg(0) {
	case "materials":
		err = listMaterials(ctx, api)
	case "products":
		err = listProducts(ctx, api)
	case "suggest":
		err = suggest(ctx, api)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: plannerctl [flags] <command>

Commands:
  materials   List materials and stock
  products    List products with their bills of materials
  suggest     Request a production suggestion

Flags:
`)
	flag.PrintDefaults()
}

func listMaterials(ctx context.Context, api *client.Client) error {
	materials, err := api.ListMaterials(ctx)
	if err != nil {
		return err
	}
	for _, m := range materials {
		fmt.Printf("%-12s %-30s stock %d\n", m.Code, m.Name, m.StockQuantity)
	}
	return nil
}

func listProducts(ctx context.Context, api *client.Client) error {
	products, err := api.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%-12s %-30s %.2f\n", p.Code, p.Name, p.Price)
		for _, line := range p.Materials {
			fmt.Printf("    %d x %s\n", line.QuantityRequired, line.MaterialName)
		}
	}
	return nil
}

func suggest(ctx context.Context, api *client.Client) error {
	suggestion, err := api.Suggest(ctx)
	if err != nil {
		return err
	}
	if len(suggestion.Items) == 0 {
		fmt.Println("Nothing can be produced with current stock.")
		return nil
	}
	for _, item := range suggestion.Items {
		fmt.Printf("%-30s x%-6d %10.2f\n", item.ProductName, item.Quantity, item.TotalValue)
	}
	fmt.Printf("%-37s %10.2f\n", "Total", suggestion.TotalValue)
	return nil
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
