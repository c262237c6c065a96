package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("pixel-bridge", "Serial link to WS2812 LED strip bridge")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	trace      = app.Flag("trace", "Log every received byte.").Bool()
	configFile = app.Flag("config", "Configuration file.").Short('c').Default("config.yaml").String()

	start  = app.Command("start", "Start driving the strip from the serial link")
	dryRun = start.Flag("dry-run", "Log pixels instead of driving the strip.").Bool()

	send       = app.Command("send", "Send a single frame over the serial link")
	sendColors = send.Arg("colors", "Hex colors, one per led (ff0000).").Required().Strings()

	demo       = app.Command("demo", "Play an animation over the serial link")
	demoEffect = demo.Arg("effect", "Effect to play.").Required().Enum("flash", "breathe", "rainbow")
	demoColor  = demo.Flag("color", "Color for flash and breathe.").Default("00ff00").String()

	ports   = app.Command("ports", "List serial ports")
	version = app.Command("version", "Show current version.")
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}
	if *trace {
		log.SetLevel(log.TraceLevel)
	}

	switch cmd {
	case start.FullCommand():
		err = startBridge()
	case send.FullCommand():
		err = sendFrame()
	case demo.FullCommand():
		err = playDemo()
	case ports.FullCommand():
		err = listPorts()
	case version.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}

	if err != nil {
		log.Fatal(err)
	}
}
