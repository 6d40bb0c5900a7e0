package syncer

import (
	"fmt"
	"path/filepath"
	"sort"

	"asset-sync/core/logger"
	"asset-sync/feature/asset"
	"asset-sync/feature/codegen"
	"asset-sync/feature/manifest"
	"asset-sync/feature/project"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Input is the transient, per-run record of one discovered file.
//
// Created during input discovery with Hash and ID unset, then mutated in
// place by the decision engine once content is read and an identifier is
// resolved. Inputs are never persisted directly; their terminal state is
// projected into the new manifest at the end of the run.
type Input struct {
	// Path is the absolute path on disk of the file.
	Path string

	// Config is the config that owns this input.
	Config *project.Config

	// InputConfig is the input declaration within Config that matched.
	InputConfig *project.InputConfig

	// Hash is the hex content hash, once calculated.
	Hash string

	// ID is the identifier in the remote store, once resolved. It is set
	// if and only if reuse from the previous manifest succeeded or an
	// upload succeeded.
	ID string

	// Slice is the atlas sub-region for packed inputs. Packing is not
	// implemented yet, so it stays nil at this layer.
	Slice *asset.Slice
}

// Session holds all of the state for a single sync run.
type Session struct {
	id string

	// configs always holds at least one element; the first entry is the
	// root config the session was started from.
	configs []*project.Config

	// originalManifest is the manifest as of the beginning of the run.
	// It is only ever read; decisions write to the inputs, which a fresh
	// manifest is rebuilt from at the end.
	originalManifest *manifest.Manifest

	// inputs is the flat, uniquely-named index of everything discovered
	// so far.
	inputs map[asset.Name]*Input

	log *zap.Logger
}

// NewSession loads the root config at fuzzyConfigPath (a config file or a
// folder containing one) and the previous manifest, if any.
func NewSession(fuzzyConfigPath string, log *zap.Logger) (*Session, error) {
	rootConfig, err := project.ReadConfigFromFolderOrFile(fuzzyConfigPath)
	if err != nil {
		return nil, err
	}

	original, err := manifest.ReadFromFolder(rootConfig.Folder)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log = logger.WithSession(log, id)

	log.Debug("Starting sync session",
		zap.String("config", rootConfig.Name),
		zap.Int("known_inputs", len(original.Inputs)))

	return &Session{
		id:               id,
		configs:          []*project.Config{rootConfig},
		originalManifest: original,
		inputs:           map[asset.Name]*Input{},
		log:              log,
	}, nil
}

// ID returns the unique id of this session, used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// RootConfig returns the config the session was started from.
func (s *Session) RootConfig() *project.Config {
	return s.configs[0]
}

// DiscoverConfigs locates all configs connected to the root config via
// includes.
func (s *Session) DiscoverConfigs() error {
	configs, err := project.DiscoverConfigs(s.RootConfig(), s.log)
	if err != nil {
		return err
	}
	s.configs = configs
	return nil
}

// WriteManifest rebuilds the manifest from the final state of every input
// and persists it into the root config's folder.
func (s *Session) WriteManifest() error {
	s.log.Debug("Generating new manifest")

	m := manifest.New()
	for name, input := range s.inputs {
		m.Inputs[name] = manifest.InputManifest{
			Hash:   input.Hash,
			ID:     input.ID,
			Slice:  input.Slice,
			Config: *input.InputConfig,
		}
	}

	return m.WriteToFolder(s.RootConfig().Folder)
}

// Codegen renders generated code for every input that asks for it. Inputs
// whose declaration carries a codegen path are consolidated into one output
// per path; all others generate one file next to each input.
func (s *Session) Codegen() error {
	s.log.Debug("Starting codegen")

	grouped := map[string][]codegen.Input{}
	var individual []codegen.Input

	for _, input := range s.inputs {
		ci := codegen.Input{
			Path:     input.Path,
			BasePath: input.Config.BasePath,
			Kind:     input.InputConfig.Codegen,
			ID:       input.ID,
			Slice:    input.Slice,
		}

		if input.InputConfig.CodegenPath != "" {
			outputPath := input.InputConfig.CodegenPath
			if !filepath.IsAbs(outputPath) {
				outputPath = filepath.Join(input.Config.Folder, outputPath)
			}
			grouped[outputPath] = append(grouped[outputPath], ci)
		} else {
			individual = append(individual, ci)
		}
	}

	outputPaths := make([]string, 0, len(grouped))
	for outputPath := range grouped {
		outputPaths = append(outputPaths, outputPath)
	}
	sort.Strings(outputPaths)

	for _, outputPath := range outputPaths {
		if err := codegen.WriteGrouped(outputPath, grouped[outputPath], s.log); err != nil {
			return fmt.Errorf("codegen for %q: %w", outputPath, err)
		}
	}

	if err := codegen.WriteIndividual(individual, s.log); err != nil {
		return err
	}

	return nil
}
