package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/keyframer/api"
	"github.com/matt-g-everett/keyframer/stream"
	"golang.org/x/sync/errgroup"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Commander  *stream.Commander
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Commander.Subscribe(); err != nil {
		log.Println(err)
	}
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	a.Config, err = stream.LoadConfig(f)
	return err
}

func (a *app) serveAPI(ctx context.Context) error {
	srv := api.NewServer(a.Controller).HTTPServer(a.Config.API.Listen)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println(err)
		}
	}()

	log.Printf("Listening on %s", a.Config.API.Listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Streamer.Run(ctx)
	})
	g.Go(func() error {
		return a.serveAPI(ctx)
	})
	return g.Wait()
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	a := newApp()
	if err := a.readConfig(*configPath); err != nil {
		log.Fatalf("Reading config: %v", err)
	}
	log.Printf("Config: %d outputs, streaming to %s at %vfps",
		len(a.Config.Outputs), a.Config.Mqtt.Topics.Stream, a.Config.FrameRate)

	controller, err := stream.NewController(a.Config)
	if err != nil {
		log.Fatalf("Building outputs: %v", err)
	}
	a.Controller = controller

	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	client := mqtt.NewClient(options)

	a.Client = client
	a.Streamer = stream.NewStreamer(a.Config, controller, stream.MQTTPublisher{Client: client})
	a.Commander = stream.NewCommander(a.Config, controller, client)

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("Stopped")
}
