package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/zintix-labs/expedlab"
	"github.com/zintix-labs/expedlab/demo"
	"github.com/zintix-labs/expedlab/spec"
	"github.com/zintix-labs/expedlab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	name    string
	id      spec.PID
	max     int
	effects string
	format  string
	out     string
	quiet   bool
}

type pidFlag struct{ p *spec.PID }

func (f pidFlag) String() string { return fmt.Sprint(uint(*f.p)) }
func (f pidFlag) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return err
	}
	*f.p = spec.PID(uint(u))
	return nil
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.Var(pidFlag{&cfg.id}, "planet", "target planet id")
	flag.IntVar(&cfg.max, "max", 0, "cap sector count per type (0 = planet limit)")
	flag.StringVar(&cfg.effects, "effects", "", "comma separated effect keys (empty = all registered)")
	flag.StringVar(&cfg.format, "format", "text", "output format: text|json|yaml|snap|b64")
	flag.StringVar(&cfg.out, "o", "", "output file (default stdout)")
	flag.BoolVar(&cfg.quiet, "q", false, "suppress progress bar")

	flag.Parse()
}

// 這裡解析掃描參數並執行敏感度掃描
func executeScan() {
	cfg.valid() // 基本檢查

	lab, err := demo.NewExpedLab()
	if err != nil {
		log.Fatal(err)
	}
	ent, ok := lab.EntryByID(cfg.id)
	if !ok {
		log.Fatalf("planet id %d not found", uint(cfg.id))
	}
	cfg.name = ent.Name

	// 輸出目的地
	out := os.Stdout
	if cfg.out != "" {
		f, err := os.Create(cfg.out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	// 至此確保可執行
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "%s[PLANET:%s] [MAX:%d] [FORMAT:%s]%s\n", green, cfg.name, cfg.max, cfg.format, reset)

	var rep stats.Render
	switch cfg.format {
	case "json":
		rep = &stats.JsonRender{}
	case "yaml":
		rep = &stats.YAMLRender{}
	case "text":
		rep = &stats.TextRender{}
	}

	opts := expedlab.SweepOptions{
		Effects:      parseEffects(cfg.effects),
		MaxCount:     cfg.max,
		ShowProgress: !cfg.quiet,
	}

	n := 0
	err = lab.Sweep(cfg.id, opts, func(r *stats.ExpeditionReport) error {
		n++
		switch cfg.format {
		case "snap":
			return stats.WriteSnapshot(out, r)
		case "b64":
			s, err := stats.SnapshotString(r)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, s)
			return err
		default:
			return r.WriteWith(out, rep)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	p.Fprintf(os.Stderr, "%s[DONE] %d reports%s\n", green, n, reset)
}

func parseEffects(s string) []spec.EffectKey {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keys := make([]spec.EffectKey, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, spec.EffectKey(p))
		}
	}
	return keys
}

func (cfg *config) valid() {
	// 規模上限檢查
	if cfg.max < 0 {
		log.Fatal("value err : max must >= 0")
	}

	// 輸出格式檢查
	switch cfg.format {
	case "text", "json", "yaml", "snap", "b64":
	default:
		log.Fatal("value err : format must be text|json|yaml|snap|b64")
	}

	// 二進位快照寫到終端沒有意義，強制要求輸出檔
	if cfg.format == "snap" && cfg.out == "" {
		log.Fatal("value err : snap format requires -o file")
	}
}
