package domain

import "strings"

// WorkProcess is the site process taxonomy used for checklists and display.
type WorkProcess string

const (
	ProcessHeight       WorkProcess = "height"
	ProcessStructure    WorkProcess = "structure"
	ProcessExcavation   WorkProcess = "excavation"
	ProcessFinishing    WorkProcess = "finishing"
	ProcessElectrical   WorkProcess = "electrical"
	ProcessWelding      WorkProcess = "welding"
	ProcessTransport    WorkProcess = "transport"
	ProcessHousekeeping WorkProcess = "housekeeping"
	ProcessCutting      WorkProcess = "cutting"
	ProcessRebar        WorkProcess = "rebar"
	ProcessConcrete     WorkProcess = "concrete"
	ProcessDemolition   WorkProcess = "demolition"
	ProcessOthers       WorkProcess = "others"
)

// AllWorkProcesses lists the taxonomy in display order.
var AllWorkProcesses = []WorkProcess{
	ProcessHeight, ProcessStructure, ProcessExcavation, ProcessFinishing,
	ProcessElectrical, ProcessWelding, ProcessTransport, ProcessHousekeeping,
	ProcessCutting, ProcessRebar, ProcessConcrete, ProcessDemolition, ProcessOthers,
}

// processKeywords holds lowercase substrings that identify each process in
// either language. Matching walks AllWorkProcesses in order.
var processKeywords = map[WorkProcess][]string{
	ProcessHeight:       {"height", "고소", "접근"},
	ProcessStructure:    {"structure", "formwork", "골조", "거푸집"},
	ProcessExcavation:   {"excavation", "earthwork", "굴착", "조성"},
	ProcessFinishing:    {"finishing", "painting", "마감", "도장"},
	ProcessElectrical:   {"electrical", "mechanical", "설비", "전기"},
	ProcessWelding:      {"welding", "용접", "보수"},
	ProcessTransport:    {"transport", "lifting", "운반", "하역"},
	ProcessHousekeeping: {"housekeeping", "cleanup", "정리"},
	ProcessCutting:      {"cutting", "fabrication", "절단", "가공"},
	ProcessRebar:        {"rebar", "철근"},
	ProcessConcrete:     {"concrete", "콘크리트", "타설"},
	ProcessDemolition:   {"demolition", "dismantl", "해체", "철거"},
}

// ClassifyProcess maps a free-form process name onto the taxonomy by
// case-insensitive keyword match. Unknown names classify as ProcessOthers.
func ClassifyProcess(name string) WorkProcess {
	lower := strings.ToLower(name)
	for _, p := range AllWorkProcesses {
		for _, kw := range processKeywords[p] {
			if strings.Contains(lower, kw) {
				return p
			}
		}
	}
	return ProcessOthers
}

// Title returns the English display title.
func (p WorkProcess) Title() string {
	switch p {
	case ProcessHeight:
		return "Height"
	case ProcessStructure:
		return "Structure"
	case ProcessExcavation:
		return "Excavation"
	case ProcessFinishing:
		return "Finishing"
	case ProcessElectrical:
		return "Electrical"
	case ProcessWelding:
		return "Welding"
	case ProcessTransport:
		return "Transport"
	case ProcessHousekeeping:
		return "Housekeeping"
	case ProcessCutting:
		return "Cutting"
	case ProcessRebar:
		return "Rebar"
	case ProcessConcrete:
		return "Concrete"
	case ProcessDemolition:
		return "Demolition"
	default:
		return "Others"
	}
}

// ChecklistItem is one pre-work safety check.
type ChecklistItem struct {
	Title   string
	Content string
}

// Checklist returns the safety checks to run before starting the process.
func (p WorkProcess) Checklist() []ChecklistItem {
	switch p {
	case ProcessHeight:
		return []ChecklistItem{
			{"Scaffold Fall Protection", "Platform structure verified, guardrails in place, safety nets installed."},
			{"Steel Erection Fall Protection", "Access ladders/stair towers provided, certified anchor points for harnesses, harness condition OK."},
			{"Roof Work Fall Protection", "Work platforms ≥ 300 mm wide, safety nets, and guardrails provided."},
			{"Opening Protection", "Floor/wall openings protected with guardrails, barricades, or load-rated covers."},
			{"Scaffold Assembly Condition", "No damaged planks, no loose joints/couplers, legs/plinths free of settlement or deformation."},
		}
	case ProcessStructure:
		return []ChecklistItem{
			{"Earth-Retaining/Shoring Safety", "Member connections and intersections secured; check for damage/corrosion; struts and walers installed."},
			{"Formwork/Falsework Condition", "Joints and connectors sound; verify bearing/soil; check for ground settlement."},
			{"Timely Installation of Shoring", "Supports installed concurrently with excavation as required."},
		}
	case ProcessExcavation:
		return []ChecklistItem{
			{"Surrounding Ground Condition", "Review topography, geology, groundwater level, and seepage conditions."},
			{"Underground Utility Survey", "Locate gas/water lines, power and telecom cables before excavation."},
			{"Adequate Slope/Benching", "Provide slopes/benching appropriate to soil conditions and surroundings."},
			{"Slope/Embankment Control", "Prevent collapse/rockfall; install drains/ditches; prevent soil run-off."},
			{"Settlement & Crack Inspection", "Daily patrol inspections; implement mitigation measures if issues found."},
		}
	case ProcessFinishing:
		return []ChecklistItem{
			{"Polyurethane Foam Work", "Separate from hot work; provide ventilation and shielding; place fire extinguishers; post MSDS."},
		}
	case ProcessElectrical:
		return []ChecklistItem{
			{"Temporary Electrical Safety", "Install ELCB/GFCI; use approved electrical equipment and cables correctly."},
			{"Fire Alarm & Emergency Egress", "Exit signage and lighting provided; alarm systems operational."},
		}
	case ProcessWelding:
		return []ChecklistItem{
			{"Hot Work Safety (Pre/Post)", "Check gas concentrations; segregate flammables; use spark/fire blankets; keep fire extinguishers nearby."},
			{"Equipment Inspection", "No cracked hoses; no gas leaks; flashback arrestors installed."},
		}
	case ProcessTransport:
		return []ChecklistItem{
			{"Tower Crane / Hoisting Operations", "Suspend work in high winds; ensure supports/ties; secure and balance loads."},
			{"Temporary Access Roads", "Provide traffic signs; check steel road plates; ensure anti-slip measures."},
		}
	case ProcessHousekeeping:
		return []ChecklistItem{
			{"General Housekeeping", "Secure materials, tie down temporary items, and prevent debris dispersion."},
		}
	case ProcessCutting:
		return []ChecklistItem{
			{"Cutting/Hot Work Controls", "Control flying sparks; keep fire extinguishers; shield adjacent combustibles."},
		}
	case ProcessRebar:
		return []ChecklistItem{
			{"Retaining Member Connections", "Inspect for damage/deformation and corrosion at joints."},
			{"Shoring/Bracing Installation", "Verify connection integrity and proper tightening of struts/braces."},
		}
	case ProcessConcrete:
		return []ChecklistItem{
			{"Confined/Enclosed Areas During Curing", "Provide ventilation for curing zones and assign an attendant as needed."},
			{"Openings & Scaffold Safety During Pour", "Fall protection in place; platforms inspected before and during placement."},
		}
	case ProcessDemolition:
		return []ChecklistItem{
			{"Fall Protection During Dismantling", "Maintain guardrails, safety nets, and lifeline anchorages during removal of temporary works."},
			{"Equipment Work Plan", "Plan excavator/dump operations; assign trained signalers/spotters."},
		}
	default:
		return []ChecklistItem{
			{"Roads & Drainage Around Site", "Clear lane width and surface; remove unevenness/ice; provide traffic signage."},
			{"Confined Space Work", "Measure oxygen and toxic gases; ensure ventilation; assign an attendant."},
		}
	}
}
