package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Artifact is the JSON document both implementations synchronize on. It is
// built from the registry constants, written next to the checkpoint the
// browser client loads, and validated on both sides to prevent drift.
type Artifact struct {
	ContractName string            `json:"contract_name"`
	Version      string            `json:"version"`
	Entities     Entities          `json:"entities"`
	TurnModel    TurnModel         `json:"turn_model"`
	Actions      []ActionSpec      `json:"actions"`
	LegalMasks   map[string][]int8 `json:"legal_masks_by_phase"`
	Observation  ObservationSpec   `json:"observation"`
	ONNX         ONNXSpec          `json:"onnx"`
}

// Entities enumerates the closed sets.
type Entities struct {
	Players       []string `json:"players"`
	Cards         []string `json:"cards"`
	PublicActions []string `json:"public_actions"`
	Phases        []string `json:"phases"`
}

// TurnModel pins the fixed turn structure.
type TurnModel struct {
	InitialPhase         string   `json:"initial_phase"`
	InitialActor         string   `json:"initial_actor"`
	TerminalPhase        string   `json:"terminal_phase"`
	OpenActionPhases     []string `json:"open_action_phases"`
	ResponseActionPhases []string `json:"response_action_phases"`
}

// ActionSpec maps one action id to its open-phase and response-phase tokens.
type ActionSpec struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Labels struct {
		Open     string `json:"open"`
		Response string `json:"response"`
	} `json:"labels"`
}

// ObservationSpec describes the fixed-width encoding.
type ObservationSpec struct {
	Size                 int           `json:"size"`
	Segments             []SegmentSpec `json:"segments"`
	HistoryBuckets       []BucketSpec  `json:"history_buckets"`
	TerminalHistoryIndex int           `json:"terminal_history_index"`
}

// SegmentSpec is one contiguous one-hot group.
type SegmentSpec struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
}

// BucketSpec maps an exact history sequence to its bucket index. A nil
// Sequence marks the catch-all bucket.
type BucketSpec struct {
	Index    int      `json:"index"`
	Sequence []string `json:"sequence"`
}

// ONNXSpec pins the named tensors at the inference boundary.
type ONNXSpec struct {
	InputObservation   string  `json:"input_observation"`
	InputActionMask    string  `json:"input_action_mask"`
	OutputMaskedLogits string  `json:"output_masked_logits"`
	OutputValue        string  `json:"output_value"`
	IllegalLogit       float64 `json:"illegal_logit"`
}

// BuildArtifact assembles the artifact from the registry constants. The
// result always passes Validate; the round trip exists so drift between the
// constants and a checked-in artifact is caught mechanically.
func BuildArtifact() Artifact {
	a := Artifact{
		ContractName: Name,
		Version:      Version,
		Entities: Entities{
			Players:       []string{Player0.String(), Player1.String()},
			Cards:         []string{CardJack.String(), CardQueen.String(), CardKing.String()},
			PublicActions: []string{Check.String(), Bet.String(), Call.String(), Fold.String()},
			Phases: []string{
				PhaseDeal.String(), PhaseP0Act.String(), PhaseP1Act.String(),
				PhaseP0Response.String(), PhaseP1Response.String(), PhaseTerminal.String(),
			},
		},
		TurnModel: TurnModel{
			InitialPhase:         PhaseP0Act.String(),
			InitialActor:         Player0.String(),
			TerminalPhase:        PhaseTerminal.String(),
			OpenActionPhases:     []string{PhaseP0Act.String(), PhaseP1Act.String()},
			ResponseActionPhases: []string{PhaseP0Response.String(), PhaseP1Response.String()},
		},
		LegalMasks: map[string][]int8{
			PhaseDeal.String():       maskSlice(MaskNone),
			PhaseP0Act.String():      maskSlice(MaskOpen),
			PhaseP1Act.String():      maskSlice(MaskOpen),
			PhaseP0Response.String(): maskSlice(MaskResponse),
			PhaseP1Response.String(): maskSlice(MaskResponse),
			PhaseTerminal.String():   maskSlice(MaskNone),
		},
		Observation: ObservationSpec{
			Size: ObservationSize,
			Segments: []SegmentSpec{
				{Name: "private_card_one_hot", Offset: PrivateCardOffset, Size: PrivateCardDim},
				{Name: "public_history_one_hot", Offset: HistoryOffset, Size: HistoryDim},
				{Name: "current_actor_one_hot", Offset: ActorOffset, Size: ActorDim},
			},
			HistoryBuckets: []BucketSpec{
				{Index: 0, Sequence: []string{}},
				{Index: 1, Sequence: []string{Check.String()}},
				{Index: 2, Sequence: []string{Bet.String()}},
				{Index: 3, Sequence: []string{Check.String(), Bet.String()}},
				{Index: TerminalHistoryBucket, Sequence: nil},
			},
			TerminalHistoryIndex: TerminalHistoryBucket,
		},
		ONNX: ONNXSpec{
			InputObservation:   InputObservationName,
			InputActionMask:    InputActionMaskName,
			OutputMaskedLogits: OutputMaskedLogitsName,
			OutputValue:        OutputValueName,
			IllegalLogit:       float64(IllegalLogit),
		},
	}

	for id := ActionID(0); id < ActionDim; id++ {
		spec := ActionSpec{ID: int(id), Name: id.String()}
		switch id {
		case ActionCheckCall:
			spec.Labels.Open = Check.String()
			spec.Labels.Response = Call.String()
		case ActionBet:
			spec.Labels.Open = Bet.String()
			spec.Labels.Response = Bet.String()
		case ActionFold:
			spec.Labels.Open = Fold.String()
			spec.Labels.Response = Fold.String()
		}
		a.Actions = append(a.Actions, spec)
	}
	return a
}

func maskSlice(m Mask) []int8 {
	out := make([]int8, ActionDim)
	copy(out, m[:])
	return out
}

// Validate runs the semantic checks both implementations apply to the shared
// artifact. Structural JSON errors surface at decode time; these checks
// catch documents that decode fine but describe an inconsistent game.
func (a Artifact) Validate() error {
	phases := make(map[string]bool, len(a.Entities.Phases))
	for _, p := range a.Entities.Phases {
		phases[p] = true
	}
	players := make(map[string]bool, len(a.Entities.Players))
	for _, p := range a.Entities.Players {
		players[p] = true
	}
	tokens := make(map[string]bool, len(a.Entities.PublicActions))
	for _, t := range a.Entities.PublicActions {
		tokens[t] = true
	}

	if len(a.Entities.Players) != NumPlayers {
		return fmt.Errorf("contract requires exactly %d players, got %d", NumPlayers, len(a.Entities.Players))
	}
	if !players[a.TurnModel.InitialActor] {
		return fmt.Errorf("initial actor %q is not a declared player", a.TurnModel.InitialActor)
	}
	if !phases[a.TurnModel.InitialPhase] {
		return fmt.Errorf("initial phase %q is not declared", a.TurnModel.InitialPhase)
	}
	if !phases[a.TurnModel.TerminalPhase] {
		return fmt.Errorf("terminal phase %q is not declared", a.TurnModel.TerminalPhase)
	}

	open := make(map[string]bool, len(a.TurnModel.OpenActionPhases))
	for _, p := range a.TurnModel.OpenActionPhases {
		if !phases[p] {
			return fmt.Errorf("open action phase %q is not declared", p)
		}
		open[p] = true
	}
	for _, p := range a.TurnModel.ResponseActionPhases {
		if !phases[p] {
			return fmt.Errorf("response action phase %q is not declared", p)
		}
		if open[p] {
			return fmt.Errorf("phase %q cannot be both open and response", p)
		}
	}

	actions := append([]ActionSpec(nil), a.Actions...)
	sort.Slice(actions, func(i, j int) bool { return actions[i].ID < actions[j].ID })
	names := make(map[string]bool, len(actions))
	for i, action := range actions {
		if action.ID != i {
			return fmt.Errorf("action ids must be contiguous from 0, got %d at position %d", action.ID, i)
		}
		if names[action.Name] {
			return fmt.Errorf("duplicate action name %q", action.Name)
		}
		names[action.Name] = true
		if !tokens[action.Labels.Open] {
			return fmt.Errorf("action %q open label %q is not a public action token", action.Name, action.Labels.Open)
		}
		if !tokens[action.Labels.Response] {
			return fmt.Errorf("action %q response label %q is not a public action token", action.Name, action.Labels.Response)
		}
	}

	if len(a.LegalMasks) != len(a.Entities.Phases) {
		return fmt.Errorf("legal_masks_by_phase must cover every phase: have %d, want %d", len(a.LegalMasks), len(a.Entities.Phases))
	}
	for phase, mask := range a.LegalMasks {
		if !phases[phase] {
			return fmt.Errorf("mask declared for unknown phase %q", phase)
		}
		if len(mask) != len(actions) {
			return fmt.Errorf("phase %q mask length %d != action count %d", phase, len(mask), len(actions))
		}
		for _, bit := range mask {
			if bit != 0 && bit != 1 {
				return fmt.Errorf("phase %q mask has non-binary value %d", phase, bit)
			}
		}
	}

	segments := append([]SegmentSpec(nil), a.Observation.Segments...)
	sort.Slice(segments, func(i, j int) bool { return segments[i].Offset < segments[j].Offset })
	expected := 0
	byName := make(map[string]SegmentSpec, len(segments))
	for _, seg := range segments {
		if seg.Offset != expected {
			return fmt.Errorf("observation segment %q has offset %d, expected %d", seg.Name, seg.Offset, expected)
		}
		expected += seg.Size
		byName[seg.Name] = seg
	}
	if expected != a.Observation.Size {
		return fmt.Errorf("observation segments sum to %d, size says %d", expected, a.Observation.Size)
	}
	for _, required := range []string{"private_card_one_hot", "public_history_one_hot", "current_actor_one_hot"} {
		if _, ok := byName[required]; !ok {
			return fmt.Errorf("missing required observation segment %q", required)
		}
	}
	if byName["private_card_one_hot"].Size != len(a.Entities.Cards) {
		return fmt.Errorf("private_card_one_hot size must equal number of cards")
	}
	if byName["current_actor_one_hot"].Size != len(a.Entities.Players) {
		return fmt.Errorf("current_actor_one_hot size must equal number of players")
	}
	if byName["public_history_one_hot"].Size != len(a.Observation.HistoryBuckets) {
		return fmt.Errorf("public_history_one_hot size must equal number of history buckets")
	}

	indices := make([]int, 0, len(a.Observation.HistoryBuckets))
	sequences := make(map[string]bool)
	terminalDeclared := false
	for _, bucket := range a.Observation.HistoryBuckets {
		indices = append(indices, bucket.Index)
		if bucket.Index == a.Observation.TerminalHistoryIndex {
			terminalDeclared = true
		}
		if bucket.Sequence == nil {
			continue
		}
		key := fmt.Sprint(bucket.Sequence)
		if sequences[key] {
			return fmt.Errorf("duplicate history sequence %v", bucket.Sequence)
		}
		sequences[key] = true
	}
	sort.Ints(indices)
	for i, idx := range indices {
		if idx != i {
			return fmt.Errorf("history bucket indices must be contiguous from 0")
		}
	}
	if !terminalDeclared {
		return fmt.Errorf("terminal_history_index %d is not a declared bucket", a.Observation.TerminalHistoryIndex)
	}

	return nil
}

// WriteFile marshals the artifact as indented JSON.
func (a Artifact) WriteFile(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal contract artifact: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write contract artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads and decodes an artifact without validating it; callers
// decide whether to run Validate.
func LoadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("read contract artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return Artifact{}, fmt.Errorf("decode contract artifact: %w", err)
	}
	return a, nil
}
