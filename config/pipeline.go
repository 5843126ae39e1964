package config

import "sync"

var (
	pipelineOnce   sync.Once
	pipelineConfig *PipelineConfig
)

type PipelineConfig struct {
	OCRWorkers          int
	StructureWorkers    int
	EvalWorkers         int
	StructureMaxRetries int
}

func GetPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		loadEnv()

		pipelineConfig = &PipelineConfig{
			OCRWorkers:          getEnvInt("OCR_WORKERS", 5),
			StructureWorkers:    getEnvInt("STRUCTURE_WORKERS", 10),
			EvalWorkers:         getEnvInt("EVAL_WORKERS", 10),
			StructureMaxRetries: getEnvInt("STRUCTURE_MAX_RETRIES", 3),
		}
	})
	return pipelineConfig
}
