// Command lectio runs the OCR pipeline over a PDF, image, or URL and
// prints the recognized text or a JSON export.
//
// Usage:
//
//	lectio [flags] <source>
//
// Configuration can also come from a .env file or the environment:
// LECTIO_DET_ARCH and LECTIO_RECO_ARCH set the default architectures.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/lectio"
)

func main() {
	// A missing .env file is fine; flags and defaults still apply.
	_ = godotenv.Load()

	var (
		detArch  = flag.String("det", envOr("LECTIO_DET_ARCH", ""), "detection architecture")
		recoArch = flag.String("reco", envOr("LECTIO_RECO_ARCH", ""), "recognition architecture")
		pages    = flag.String("pages", "", "pages to process, e.g. 1,3,5-7 (default all)")
		langs    = flag.String("langs", "", "comma-separated recognition languages, e.g. eng,fra")
		workers  = flag.Int("workers", 0, "pages processed concurrently (default: number of CPUs)")
		blocks   = flag.Bool("blocks", false, "group lines into blocks")
		asJSON   = flag.Bool("json", false, "print the result as JSON")
		annotate = flag.String("annotate", "", "write annotated page images to this directory")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lectio [flags] <pdf|image|url>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ext := lectio.Open(flag.Arg(0)).
		Detector(*detArch).
		Recognizer(*recoArch).
		Workers(*workers)

	if *blocks {
		ext = ext.ResolveBlocks()
	}
	if *langs != "" {
		ext = ext.Languages(strings.Split(*langs, ",")...)
	}
	if *pages != "" {
		selected, err := parsePages(*pages)
		if err != nil {
			log.Fatalf("invalid -pages: %v", err)
		}
		ext = ext.Pages(selected...)
	}

	if *annotate != "" {
		if err := os.MkdirAll(*annotate, 0o755); err != nil {
			log.Fatalf("creating %s: %v", *annotate, err)
		}
		warnings, err := ext.Annotate(*annotate)
		reportWarnings(log, warnings)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("annotated pages written to %s", *annotate)
		return
	}

	res, warnings, err := ext.Result()
	reportWarnings(log, warnings)
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		data, err := res.ExportJSON()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(data))
		return
	}
	fmt.Println(res.Text())
}

func reportWarnings(log *logrus.Logger, warnings []lectio.Warning) {
	for _, w := range warnings {
		log.Warn(w.String())
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parsePages expands a page list such as "1,3,5-7" into page numbers.
func parsePages(spec string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if start, end, ok := strings.Cut(part, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				return nil, fmt.Errorf("bad page %q", part)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil || hi < lo {
				return nil, fmt.Errorf("bad range %q", part)
			}
			for p := lo; p <= hi; p++ {
				out = append(out, p)
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad page %q", part)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no pages in %q", spec)
	}
	return out, nil
}
