package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"

	"github.com/hiresift/hiresift/config"
	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/objstore"
	"github.com/hiresift/hiresift/internal/pipeline"
	"github.com/hiresift/hiresift/internal/store"
	"github.com/hiresift/hiresift/internal/workflow"
	"github.com/hiresift/hiresift/pkg/logger"
)

func main() {
	log, err := logger.NewLogger(
		logger.WithLevel("info"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"logs/agent.log"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("Agent exited with error", logger.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger) error {
	minioCfg := config.GetMinioConfig()
	mongoCfg := config.GetMongoConfig()
	llmCfg := config.GetLLMConfig()
	pipeCfg := config.GetPipelineConfig()

	objects, err := objstore.NewClient(minioCfg, log)
	if err != nil {
		return err
	}
	for _, bucket := range []string{minioCfg.ResumeBucket, minioCfg.CompareBucket} {
		if err := objects.EnsureBucket(ctx, bucket); err != nil {
			return err
		}
	}

	st, err := store.Connect(ctx, mongoCfg, log)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	sessionID := askSessionID()

	gateway, err := llm.NewGateway(ctx, llmCfg, st, log)
	if err != nil {
		return err
	}
	gen := gateway.ForSession(sessionID)

	limits := pipeline.NewLimits(pipeCfg)
	ocr := pipeline.NewOCRWorker(objects, gen, limits, log)
	machine := workflow.NewMachine(workflow.Config{
		Generator:   gen,
		Objects:     objects,
		Candidates:  st,
		Checkpoints: st,
		Runner: pipeline.NewRunner(
			ocr,
			pipeline.NewStructureWorker(gen, limits, pipeCfg.StructureMaxRetries, log),
			pipeline.NewScoreWorker(gen, limits, log),
			minioCfg.ResumeBucket,
			log,
		),
		OCR:           ocr,
		ResumeBucket:  minioCfg.ResumeBucket,
		CompareBucket: minioCfg.CompareBucket,
		Logger:        log,
	})

	return chatLoop(ctx, machine, objects, sessionID)
}

// askSessionID lets the user name a session so an interrupted one can be
// picked up again. Enter starts a fresh session.
func askSessionID() string {
	prompt := promptui.Prompt{Label: "Session id (enter for a new session)"}
	id, err := prompt.Run()
	if err != nil || strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return strings.TrimSpace(id)
}

func chatLoop(ctx context.Context, machine *workflow.Machine, objects *objstore.Client, sessionID string) error {
	fmt.Println("Session:", sessionID)

	turn, err := machine.Start(ctx, sessionID)
	if err != nil {
		return err
	}

	for {
		for _, reply := range turn.Replies {
			fmt.Println()
			fmt.Println(reply)
		}
		if turn.Done {
			return nil
		}

		input, err := readInput(ctx, objects, turn.Suspended)
		if err != nil {
			return err
		}

		turn, err = machine.Resume(ctx, sessionID, input)
		if err != nil {
			return err
		}
	}
}

// readInput collects the one input the open wait asks for. For upload
// waits it also offers pushing a local folder of PDFs to the bucket.
func readInput(ctx context.Context, objects *objstore.Client, susp *workflow.Suspension) (string, error) {
	fmt.Println()
	fmt.Println(susp.Prompt)

	if susp.Kind == workflow.SuspendUpload {
		prompt := promptui.Prompt{Label: "Local folder to upload (enter if already uploaded, 'exit' to quit)"}
		answer, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return "exit", nil
			}
			return "", err
		}
		answer = strings.TrimSpace(answer)
		switch strings.ToLower(answer) {
		case "exit", "quit":
			return "exit", nil
		case "":
			return "done", nil
		}
		keys, err := uploadFolder(ctx, objects, susp, answer)
		if err != nil {
			fmt.Println("upload failed:", err)
		}
		if len(keys) > 0 {
			return strings.Join(keys, ", "), nil
		}
		return "done", nil
	}

	prompt := promptui.Prompt{Label: "You"}
	answer, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "exit", nil
		}
		return "", err
	}
	return answer, nil
}

// uploadFolder pushes a folder's PDFs to the wait's bucket and returns
// the uploaded keys, so the resume can name exactly those files.
func uploadFolder(ctx context.Context, objects *objstore.Client, susp *workflow.Suspension, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var uploaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		if susp.MaxFiles > 0 && len(uploaded) >= susp.MaxFiles {
			fmt.Printf("Stopping at %d files for this step.\n", susp.MaxFiles)
			break
		}
		path := filepath.Join(dir, entry.Name())
		if err := objects.Upload(ctx, susp.Bucket, path, entry.Name()); err != nil {
			fmt.Println("skipped", entry.Name()+":", err)
			continue
		}
		uploaded = append(uploaded, entry.Name())
	}

	fmt.Printf("Uploaded %d file(s) to %q.\n", len(uploaded), susp.Bucket)
	return uploaded, nil
}
