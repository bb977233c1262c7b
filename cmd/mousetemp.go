package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/albertb/mousetemp/internal"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// A .env file is optional; it only provides defaults for the flags below.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("failed to load .env file:", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal("failed to get user home directory:", err)
	}
	defaultConfigPath := filepath.Join(home, ".config", "mousetemp", "config.yaml")
	if path := os.Getenv("MOUSETEMP_CONFIG"); path != "" {
		defaultConfigPath = path
	}

	configPath := flag.String("config", defaultConfigPath, "path to the config file, defaults are used if it does not exist")
	data := flag.String("data", os.Getenv("MOUSETEMP_DATA"), "path or URL of the readings CSV, overrides the config")
	dev := flag.Bool("dev", false, "whether to keep the webserver running to interact with the chart")
	addr := flag.String("addr", "", "the address the webserver should listen on in dev mode, overrides the config")
	open := flag.Bool("open", false, "whether to open the chart in the default browser in dev mode")
	fake := flag.Bool("fake", false, "whether to generate fake readings instead of loading them")
	img := flag.String("img", "", "the path to save the rendered chart (.png, .svg or .html)")
	export := flag.String("export", "", "the path to save an export of the chart (.html for ECharts, .png for a static image)")
	subject := flag.String("subject", "", "the mouse to show, defaults to the first one in the data")

	flag.Parse()

	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatal("failed to read config file:", err)
	}
	if *data != "" {
		cfg.Data.Source = *data
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := internal.Run(ctx, cfg, internal.RunOptions{
		Dev:     *dev,
		Fake:    *fake,
		Open:    *open,
		Addr:    cfg.Server.Addr,
		Img:     *img,
		Export:  *export,
		Subject: *subject,
	}); err != nil {
		log.Fatal("failed to render:", err)
	}
}

func readConfig(path string) (internal.Config, error) {
	configFile, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Println("no config file at", path, "using defaults")
		return internal.DefaultConfig(), nil
	}
	if err != nil {
		return internal.Config{}, err
	}
	defer configFile.Close()

	return internal.ReadConfig(configFile)
}
