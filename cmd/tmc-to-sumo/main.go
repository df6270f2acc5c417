package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urban-traffic-lab/tmc-to-sumo/config"
	"github.com/urban-traffic-lab/tmc-to-sumo/counts"
	"github.com/urban-traffic-lab/tmc-to-sumo/flows"
	"github.com/urban-traffic-lab/tmc-to-sumo/formatter"
	"github.com/urban-traffic-lab/tmc-to-sumo/internal"
	"github.com/urban-traffic-lab/tmc-to-sumo/mapping"
	"github.com/urban-traffic-lab/tmc-to-sumo/network"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default ./config.yml)")
	simStart := flag.String("start", "", "simulation window start, ISO-8601 (overrides config)")
	simEnd := flag.String("end", "", "simulation window end, ISO-8601 (overrides config)")
	tolerance := flag.Float64("tolerance", -1, "locator distance tolerance in network units (overrides config)")
	onTolerance := flag.String("onToleranceExceeded", "", "accept|reject an out-of-tolerance nearest junction (overrides config)")
	onUnmapped := flag.String("onUnmappedTurn", "", "abort|skip on a movement key with no mapped direction (overrides config)")
	cachePath := flag.String("cache", "", "junction cache document path (overrides config)")
	outputFolder := flag.String("out", "", "output folder (overrides config)")
	dumpJunction := flag.String("dumpJunction", "", "print the GeoJSON of a junction's incident edges and exit")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	applyOverrides(&cfg, *simStart, *simEnd, *tolerance, *onTolerance, *onUnmapped, *cachePath, *outputFolder)

	log.Printf("Loading network from %s", cfg.Input.NetworkPBF)
	net, err := network.LoadOSM(cfg.Input.NetworkPBF)
	if err != nil {
		log.Fatalf("Error reading map file '%s': %v", cfg.Input.NetworkPBF, err)
	}
	log.Printf("Network loaded: %d nodes", net.NumNodes())

	if *dumpJunction != "" {
		b, err := net.JunctionGeoJSON(network.NodeID(*dumpJunction))
		if err != nil {
			log.Fatalf("Error dumping junction: %v", err)
		}
		fmt.Println(string(b))
		return
	}

	dataset, err := counts.Read(cfg.Input.CountsCSV)
	if err != nil {
		log.Fatalf("Error processing CSV file: %v", err)
	}
	intersections, err := flows.LoadIntersections(cfg.Input.Intersections)
	if err != nil {
		log.Fatalf("Error loading JSON: %v", err)
	}

	start, end, err := resolveWindow(cfg, dataset, intersections)
	if err != nil {
		log.Fatalf("Error resolving simulation window: %v", err)
	}
	log.Printf("Simulation window: %s - %s", start, end)

	policy := mapping.RejectOutOfTolerance
	if cfg.Locator.OnToleranceExceeded == "accept" {
		policy = mapping.AcceptOutOfTolerance
	}
	mode := flows.AbortIntersection
	if cfg.Synthesis.OnUnmappedTurn == "skip" {
		mode = flows.SkipKey
	}

	pipeline := &flows.Pipeline{
		Net:      net,
		Data:     dataset,
		Store:    mapping.OpenDocumentStore(cfg.CachePath),
		Locator:  mapping.NewLocator(net, cfg.Locator.ToleranceMeters, policy),
		Mode:     mode,
		SimStart: start,
		SimEnd:   end,
	}
	result := pipeline.Run(intersections)

	aggregator := flows.NewSkipAggregator()
	for _, reason := range result.Skipped {
		aggregator.Add(reason)
	}
	aggregator.LogAll()

	if err := writeOutputs(cfg, result, start, end); err != nil {
		log.Fatalf("Error writing outputs: %v", err)
	}
	log.Printf("Generated %d flows across %d intersection(s), %d skipped",
		len(result.Flows), len(result.Details), len(result.Skipped))
}

func applyOverrides(cfg *config.AppConfig, start, end string, tolerance float64,
	onTolerance, onUnmapped, cachePath, outputFolder string) {
	if start != "" {
		cfg.Simulation.Start = start
	}
	if end != "" {
		cfg.Simulation.End = end
	}
	if tolerance >= 0 {
		cfg.Locator.ToleranceMeters = tolerance
	}
	if onTolerance != "" {
		cfg.Locator.OnToleranceExceeded = onTolerance
	}
	if onUnmapped != "" {
		cfg.Synthesis.OnUnmappedTurn = onUnmapped
	}
	if cachePath != "" {
		cfg.CachePath = cachePath
	}
	if outputFolder != "" {
		cfg.OutputFolder = outputFolder
	}
}

// resolveWindow takes the configured window, or falls back to the overall
// time range of the monitored intersections' count data.
func resolveWindow(cfg config.AppConfig, dataset *counts.Dataset, intersections []flows.Intersection) (time.Time, time.Time, error) {
	if cfg.Simulation.Start != "" && cfg.Simulation.End != "" {
		return cfg.Simulation.Window()
	}
	ids := make([]string, 0, len(intersections))
	for _, inter := range intersections {
		if inter.CentrelineID != "" {
			ids = append(ids, inter.CentrelineID)
		}
	}
	return dataset.TimeRange(ids)
}

func writeOutputs(cfg config.AppConfig, result *flows.Result, start, end time.Time) error {
	if err := os.MkdirAll(cfg.OutputFolder, 0o755); err != nil {
		return err
	}
	detailsFile := filepath.Join(cfg.OutputFolder, "simulation_details.json")
	if err := os.WriteFile(detailsFile, formatter.BuildDetailsJSON(result), 0o644); err != nil {
		return err
	}
	if len(result.Flows) == 0 {
		log.Printf("No flows generated; wrote warnings to %s", detailsFile)
		return nil
	}

	routeFile := filepath.Join(cfg.OutputFolder, "routes.rou.xml")
	routes := formatter.BuildRoutesXML(cfg.VehicleTypes, result.Flows)
	if err := os.WriteFile(routeFile, routes, 0o644); err != nil {
		return err
	}

	netFile, err := filepath.Abs(cfg.Input.NetworkPBF)
	if err != nil {
		netFile = cfg.Input.NetworkPBF
	}
	routeFileAbs, err := filepath.Abs(routeFile)
	if err != nil {
		routeFileAbs = routeFile
	}
	configFile := filepath.Join(cfg.OutputFolder, "simulation.sumocfg")
	sumoCfg := formatter.BuildSumoConfigXML(netFile, routeFileAbs, start, end)
	return os.WriteFile(configFile, sumoCfg, 0o644)
}
