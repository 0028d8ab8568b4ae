// Command prism-render compiles a YAML UI definition and prints the
// native output for one or more platforms.
//
// Usage:
//
//	prism-render -f app.yaml -p terminal
//	prism-render -f app.yaml -p all
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	prism "github.com/pcharbon70/prism"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("prism-render: ")

	file := flag.String("f", "", "YAML definition file")
	platform := flag.String("p", "terminal", "platform: terminal, desktop, web, all, or auto")
	concurrent := flag.Bool("concurrent", false, "render platforms in parallel")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	root, _, err := prism.BuildDefinition(data)
	if err != nil {
		log.Fatal(err)
	}
	if root == nil {
		log.Fatal("definition has no recognizable root entity")
	}
	if err := prism.VerifyTree(root); err != nil {
		log.Fatal(err)
	}

	platforms := selectPlatforms(*platform)
	coord := prism.NewCoordinator()

	var results map[prism.Platform]prism.Result
	if *concurrent {
		results, err = coord.ConcurrentRender(context.Background(), root, platforms, nil)
	} else {
		results, err = coord.RenderOn(root, platforms, nil)
	}
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range platforms {
		res := results[p]
		if res.Err != nil {
			log.Printf("%s: %v", p, res.Err)
			continue
		}
		if len(platforms) > 1 {
			fmt.Printf("--- %s ---\n", p)
		}
		printOutput(coord, p, res.State)
	}
}

func selectPlatforms(arg string) []prism.Platform {
	switch arg {
	case "all":
		return []prism.Platform{prism.PlatformTerminal, prism.PlatformDesktop, prism.PlatformWeb}
	case "auto":
		return prism.DetectPlatforms()
	}
	var out []prism.Platform
	for _, p := range strings.Split(arg, ",") {
		out = append(out, prism.Platform(strings.TrimSpace(p)))
	}
	return out
}

func printOutput(coord *prism.Coordinator, p prism.Platform, st *prism.State) {
	switch p {
	case prism.PlatformTerminal:
		r, _ := coord.Renderer(p)
		term := r.(*prism.TerminalRenderer)
		node, _ := st.Root.(*prism.TermNode)
		fmt.Println(term.RenderString(node))
	case prism.PlatformDesktop:
		out, err := json.MarshalIndent(st.Root, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(out))
	case prism.PlatformWeb:
		html, _ := st.Root.(string)
		fmt.Println(html)
	}
}
