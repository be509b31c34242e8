package rules

import "bonsai-backend/internal/workrecords"

// Species groups referenced by several rules. 松柏類 (evergreen conifers) and
// 雑木類 (deciduous species) follow different repotting and pruning calendars.
var (
	pineSpecies      = []string{"黒松", "赤松", "五葉松"}
	coniferSpecies   = []string{"黒松", "赤松", "五葉松", "真柏", "杜松"}
	deciduousSpecies = []string{"もみじ", "けやき", "長寿梅", "ぼけ"}
)

// Table is the seasonal care catalog. It is immutable; rules fire purely on
// (month, species) via the matcher.
var Table = []Rule{
	// 水やり
	{
		ID:          "summer_watering",
		Species:     nil,
		Months:      []int{6, 7, 8},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeWatering},
		Description: "夏場は朝夕2回の水やりを基本に、水切れに注意してください。",
		Priority:    PriorityHigh,
	},
	{
		ID:          "winter_watering",
		Species:     nil,
		Months:      []int{12, 1, 2},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeWatering},
		Description: "冬場は表土の乾き具合を見て、2〜3日に1回程度に控えます。",
		Priority:    PriorityLow,
	},
	{
		ID:          "mild_season_watering",
		Species:     nil,
		Months:      []int{3, 4, 5, 9, 10, 11},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeWatering},
		Description: "春と秋は1日1回を目安に、表土が乾いたらたっぷり与えます。",
		Priority:    PriorityMedium,
	},

	// 施肥
	{
		ID:          "spring_fertilizing",
		Species:     nil,
		Months:      []int{4, 5, 6},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeFertilizing},
		Description: "生育期の春は緩効性の固形肥料を月1回置き肥します。",
		Priority:    PriorityMedium,
	},
	{
		ID:          "autumn_fertilizing",
		Species:     nil,
		Months:      []int{9, 10},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeFertilizing},
		Description: "秋の施肥は冬越しに向けた体力づくりに効果的です。",
		Priority:    PriorityMedium,
	},

	// 消毒
	{
		ID:          "early_summer_disinfection",
		Species:     nil,
		Months:      []int{5, 6},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeDisinfection},
		Description: "梅雨前の消毒で病害虫の発生を抑えます。",
		Priority:    PriorityMedium,
	},
	{
		ID:          "autumn_disinfection",
		Species:     nil,
		Months:      []int{9},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeDisinfection},
		Description: "秋口にもう一度消毒しておくと越冬前の予防になります。",
		Priority:    PriorityLow,
	},

	// 保護
	{
		ID:          "winter_protection",
		Species:     nil,
		Months:      []int{12, 1, 2},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeProtection},
		Description: "寒風と霜を避け、保護棚やムロへ取り込んで守ります。",
		Priority:    PriorityHigh,
	},
	{
		ID:          "summer_protection",
		Species:     nil,
		Months:      []int{7, 8},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeProtection},
		Description: "強い西日を避け、遮光ネットで葉焼けを防ぎます。",
		Priority:    PriorityMedium,
	},

	// 松の芽の手入れ
	{
		ID:          "spring_budding_pine",
		Species:     pineSpecies,
		Months:      []int{4, 5},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeBudPick},
		Description: "新芽が伸びる時期です。芽摘みで枝の間延びを防ぎます。",
		Priority:    PriorityHigh,
	},
	{
		ID:          "summer_budcut_pine",
		Species:     []string{"黒松", "赤松"},
		Months:      []int{6, 7},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeBudCut},
		Description: "芽切りで二番芽を出させ、短い葉に仕上げます。",
		Priority:    PriorityHigh,
		Conditions: []Condition{
			{WorkTypes: []workrecords.WorkType{workrecords.TypeFertilizing}, MonthsSince: 1},
		},
	},
	{
		ID:          "winter_needle_thinning_pine",
		Species:     pineSpecies,
		Months:      []int{11, 12},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeLeafCut},
		Description: "古葉取りで日当たりと風通しを確保します。",
		Priority:    PriorityMedium,
	},
	{
		ID:          "juniper_pinching",
		Species:     []string{"真柏"},
		Months:      []int{4, 5, 6, 9},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeBudPick},
		Description: "真柏は伸びた芽先を指で摘んで輪郭を保ちます。",
		Priority:    PriorityMedium,
	},

	// 植え替え
	{
		ID:          "repotting_conifer",
		Species:     coniferSpecies,
		Months:      []int{3, 4},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeRepotting},
		Description: "松柏類の植え替え適期です。根鉢を3分の1ほど崩して新しい用土に。",
		Priority:    PriorityHigh,
		Conditions: []Condition{
			{WorkTypes: []workrecords.WorkType{workrecords.TypeRepotting}, MonthsSince: 24},
		},
	},
	{
		ID:          "repotting_deciduous",
		Species:     deciduousSpecies,
		Months:      []int{2, 3},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeRepotting},
		Description: "芽出し前が雑木類の植え替え適期です。",
		Priority:    PriorityHigh,
		Conditions: []Condition{
			{WorkTypes: []workrecords.WorkType{workrecords.TypeRepotting}, MonthsSince: 12},
		},
	},

	// 剪定・葉の手入れ
	{
		ID:          "winter_pruning_deciduous",
		Species:     deciduousSpecies,
		Months:      []int{1, 2},
		WorkTypes:   []workrecords.WorkType{workrecords.TypePruning},
		Description: "落葉期は枝ぶりがよく見えます。不要枝を整理しましょう。",
		Priority:    PriorityMedium,
	},
	{
		ID:          "autumn_pruning_pine",
		Species:     pineSpecies,
		Months:      []int{10, 11},
		WorkTypes:   []workrecords.WorkType{workrecords.TypePruning},
		Description: "秋の剪定で樹形を整え、懐枝に日を入れます。",
		Priority:    PriorityMedium,
	},
	{
		ID:          "leafcut_deciduous",
		Species:     []string{"もみじ", "けやき"},
		Months:      []int{6},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeLeafCut},
		Description: "葉刈り・葉すかしで二番芽と小枝を増やします。",
		Priority:    PriorityMedium,
	},

	// 針金
	{
		ID:          "autumn_wiring",
		Species:     coniferSpecies,
		Months:      []int{9, 10, 11},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeWire},
		Description: "成長が落ち着く秋は針金かけの適期です。",
		Priority:    PriorityMedium,
	},
	{
		ID:          "wire_check_remove",
		Species:     nil,
		Months:      []int{5, 6},
		WorkTypes:   []workrecords.WorkType{workrecords.TypeWireRemove},
		Description: "成長期は針金の食い込みが早いので、確認して外しましょう。",
		Priority:    PriorityMedium,
		Conditions: []Condition{
			{WorkTypes: []workrecords.WorkType{workrecords.TypeWire}, MonthsSince: 6},
		},
	},
}
