package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Cutover checker: replays the same request against the Go service and the
// legacy FastAPI deployment and diffs the responses. A diff on a critical
// target exits 1 so CI can block the traffic switch.
//
// Numeric values are compared with a small tolerance because both sides
// round averages to two decimals and float formatting differs between
// runtimes.

const numericTolerance = 0.005

type target struct {
	Name     string `json:"name"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Admin    bool   `json:"admin"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type fetched struct {
	Status  int
	Body    []byte
	Elapsed time.Duration
}

type result struct {
	Target target
	Go     fetched
	Legacy fetched
	Diffs  []string
	Err    error
}

func (r result) clean() bool { return r.Err == nil && len(r.Diffs) == 0 }

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		adminCreds  string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go service base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "legacy FastAPI base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "targets file")
	flag.StringVar(&adminCreds, "admin", "", "user:password for admin targets")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}

	var results []result
	breaking := 0
	for _, tgt := range targets {
		res := compare(client, goBase, legacyBase, adminCreds, tgt)
		if !res.clean() && tgt.Critical {
			breaking++
		}
		results = append(results, res)
	}

	report(results)
	if breaking > 0 {
		fmt.Printf("\n%d critical target(s) differ\n", breaking)
		os.Exit(1)
	}
	fmt.Println("\nall critical targets match")
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf targetsFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	if len(tf.Targets) == 0 {
		return nil, fmt.Errorf("no targets in %s", path)
	}
	return tf.Targets, nil
}

func compare(client *http.Client, goBase, legacyBase, adminCreds string, tgt target) result {
	res := result{Target: tgt}

	var err error
	if res.Go, err = fetch(client, goBase, adminCreds, tgt); err != nil {
		res.Err = fmt.Errorf("go side: %w", err)
		return res
	}
	if res.Legacy, err = fetch(client, legacyBase, adminCreds, tgt); err != nil {
		res.Err = fmt.Errorf("legacy side: %w", err)
		return res
	}

	if res.Go.Status != res.Legacy.Status {
		res.Diffs = append(res.Diffs, fmt.Sprintf("status %d != %d", res.Go.Status, res.Legacy.Status))
	}
	res.Diffs = append(res.Diffs, diffBodies(res.Go.Body, res.Legacy.Body)...)
	return res
}

func fetch(client *http.Client, base, adminCreds string, tgt target) (fetched, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return fetched{}, err
	}
	if tgt.Admin {
		user, pass, ok := strings.Cut(adminCreds, ":")
		if !ok {
			return fetched{}, fmt.Errorf("admin target %q needs -admin user:password", tgt.Path)
		}
		req.SetBasicAuth(user, pass)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fetched{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetched{}, err
	}
	return fetched{Status: resp.StatusCode, Body: body, Elapsed: time.Since(start)}, nil
}

// diffBodies decodes both payloads as JSON and walks them in parallel,
// recording the path of every mismatch. Non-JSON bodies fall back to a
// trimmed string compare.
func diffBodies(a, b []byte) []string {
	var av, bv interface{}
	aErr := json.Unmarshal(a, &av)
	bErr := json.Unmarshal(b, &bv)
	if aErr != nil || bErr != nil {
		if strings.TrimSpace(string(a)) != strings.TrimSpace(string(b)) {
			return []string{"body: non-JSON payloads differ"}
		}
		return nil
	}

	var diffs []string
	walk("$", av, bv, &diffs)
	if len(diffs) > 8 {
		diffs = append(diffs[:8], fmt.Sprintf("... %d more", len(diffs)-8))
	}
	return diffs
}

func walk(path string, a, b interface{}, diffs *[]string) {
	switch av := a.(type) {
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok {
			*diffs = append(*diffs, path+": type mismatch")
			return
		}
		for _, k := range sortedKeys(av, bv) {
			aChild, aOK := av[k]
			bChild, bOK := bv[k]
			switch {
			case !aOK:
				*diffs = append(*diffs, path+"."+k+": only in legacy")
			case !bOK:
				*diffs = append(*diffs, path+"."+k+": only in go")
			default:
				walk(path+"."+k, aChild, bChild, diffs)
			}
		}
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok {
			*diffs = append(*diffs, path+": type mismatch")
			return
		}
		if len(av) != len(bv) {
			*diffs = append(*diffs, fmt.Sprintf("%s: length %d != %d", path, len(av), len(bv)))
			return
		}
		for i := range av {
			walk(fmt.Sprintf("%s[%d]", path, i), av[i], bv[i], diffs)
		}
	case float64:
		bf, ok := b.(float64)
		if !ok || math.Abs(av-bf) > numericTolerance {
			*diffs = append(*diffs, fmt.Sprintf("%s: %v != %v", path, a, b))
		}
	default:
		if a != b {
			*diffs = append(*diffs, fmt.Sprintf("%s: %v != %v", path, a, b))
		}
	}
}

func sortedKeys(maps ...map[string]interface{}) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, m := range maps {
		for k := range m {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func report(results []result) {
	fmt.Println("shadow compare")
	fmt.Println("--------------")
	for _, res := range results {
		status := "ok"
		switch {
		case res.Err != nil:
			status = "error"
		case len(res.Diffs) > 0:
			status = "diff"
		}
		name := res.Target.Name
		if name == "" {
			name = res.Target.Path
		}
		fmt.Printf("[%-5s] %-28s go=%d (%s) legacy=%d (%s)\n",
			status, name,
			res.Go.Status, res.Go.Elapsed.Round(time.Millisecond),
			res.Legacy.Status, res.Legacy.Elapsed.Round(time.Millisecond))
		if res.Err != nil {
			fmt.Printf("        %v\n", res.Err)
		}
		for _, d := range res.Diffs {
			fmt.Printf("        %s\n", d)
		}
	}
}
