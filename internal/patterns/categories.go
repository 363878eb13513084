package patterns

import (
	"regexp"

	"github.com/ppiankov/storyintake/internal/model"
)

func categoryTables() []CategoryTable {
	return []CategoryTable{
		{
			Category:   model.CategorySafety,
			Confidence: 0.90,
			Signals: []Pattern{
				pat("safety:abuse", `(?i)\b(?:abus(?:e|ed|ive|er)|domestic violence)\b`, 0),
				pat("safety:violence", `(?i)\bviolen(?:ce|t)\b`, 0),
				pat("safety:threat", `(?i)\bthreat(?:s|en|ened|ening)?\b`, 0),
				pat("safety:unsafe", `(?i)\b(?:unsafe|not safe|scared for|afraid of (?:him|her|them))\b`, 0),
				pat("safety:danger", `(?i)\b(?:in danger|dangerous)\b`, 0),
				pat("safety:stalking", `(?i)\bstalk(?:ed|er|ing)?\b`, 0),
				pat("safety:assault", `(?i)\bassault(?:ed)?\b`, 0),
				pat("safety:restraining_order", `(?i)\brestraining order\b`, 0),
				pat("safety:flee", `(?i)\b(?:flee(?:ing)?|fled)\b`, 0),
			},
		},
		{
			Category:   model.CategoryHousing,
			Confidence: 0.85,
			Signals: []Pattern{
				pat("housing:rent", `(?i)\brent\b`, 0),
				pat("housing:eviction", `(?i)\bevict(?:ion|ed|ing)?\b`, 0),
				pat("housing:landlord", `(?i)\blandlord\b`, 0),
				pat("housing:homeless", `(?i)\bhomeless(?:ness)?\b`, 0),
				pat("housing:shelter", `(?i)\bshelter\b`, 0),
				pat("housing:mortgage", `(?i)\b(?:mortgage|foreclos(?:e|ure|ing))\b`, 0),
				pat("housing:lease", `(?i)\blease\b`, 0),
				pat("housing:place_to_live", `(?i)\bplace to (?:live|stay)\b`, 0),
				pat("housing:housing", `(?i)\bhousing\b`, 0),
			},
		},
		{
			Category:   model.CategoryEmployment,
			Confidence: 0.80,
			Signals: []Pattern{
				pat("employment:job_loss", `(?i)\b(?:lost (?:my|his|her|our) job|laid off|got fired|was fired|been fired)\b`, 0),
				pat("employment:unemployed", `(?i)\bunemploy(?:ed|ment)\b`, 0),
				pat("employment:job", `(?i)\bjobs?\b`, 0),
				pat("employment:work", `(?i)\b(?:work|working)\b`, 0),
				pat("employment:paycheck", `(?i)\b(?:paychecks?|wages|income)\b`, 0),
				pat("employment:hours_cut", `(?i)\bhours (?:were |got )?cut\b`, 0),
				pat("employment:employer", `(?i)\bemployer\b`, 0),
			},
		},
		{
			Category:   model.CategoryTransportation,
			Confidence: 0.80,
			Signals: []Pattern{
				pat("transportation:vehicle", `(?i)\b(?:car|truck|vehicle|van)\b`, 0),
				pat("transportation:repair", `(?i)\b(?:repairs?|mechanic|transmission|brakes|alternator|tires?)\b`, 0),
				pat("transportation:broke_down", `(?i)\bbr(?:oke|oken) down\b`, 0),
				pat("transportation:transit", `(?i)\b(?:bus pass|bus fare|transit|commute)\b`, 0),
				pat("transportation:gas", `(?i)\bgas money\b`, 0),
			},
		},
		{
			Category:   model.CategoryHealthcare,
			Confidence: 0.85,
			Signals: []Pattern{
				pat("healthcare:surgery", `(?i)\bsurger(?:y|ies)\b`, 0),
				pat("healthcare:hospital", `(?i)\b(?:hospital(?:ized)?|emergency room|ambulance)\b`, 0),
				pat("healthcare:medical", `(?i)\bmedical\b`, 0),
				pat("healthcare:doctor", `(?i)\bdoctors?\b`, 0),
				pat("healthcare:medication", `(?i)\b(?:medications?|medicine|prescriptions?|insulin)\b`, 0),
				pat("healthcare:treatment", `(?i)\b(?:treatment|therapy|chemo(?:therapy)?|dialysis)\b`, 0),
				pat("healthcare:condition", `(?i)\b(?:cancer|diagnos(?:is|ed)|illness|injur(?:y|ed))\b`, 0),
				pat("healthcare:dental", `(?i)\bdental\b`, 0),
			},
		},
		{
			Category:   model.CategoryLegal,
			Confidence: 0.80,
			Signals: []Pattern{
				pat("legal:lawyer", `(?i)\b(?:lawyer|attorney)\b`, 0),
				pat("legal:court", `(?i)\b(?:court|judge|hearing)\b`, 0),
				pat("legal:custody", `(?i)\bcustody\b`, 0),
				pat("legal:immigration", `(?i)\b(?:immigration|visa|deportation)\b`, 0),
				pat("legal:bail", `(?i)\bbail\b`, 0),
				pat("legal:legal", `(?i)\b(?:legal|lawsuit)\b`, 0),
			},
		},
		{
			Category:   model.CategoryFood,
			Confidence: 0.75,
			Signals: []Pattern{
				pat("food:food", `(?i)\bfood\b`, 0),
				pat("food:groceries", `(?i)\bgrocer(?:y|ies)\b`, 0),
				pat("food:hunger", `(?i)\b(?:hungry|hunger|starving)\b`, 0),
				pat("food:meals", `(?i)\bmeals?\b`, 0),
				pat("food:assistance", `(?i)\b(?:food stamps|snap benefits|food pantry|food bank)\b`, 0),
				pat("food:formula", `(?i)\bbaby formula\b`, 0),
			},
		},
		{
			Category:   model.CategoryEducation,
			Confidence: 0.75,
			Signals: []Pattern{
				pat("education:tuition", `(?i)\btuition\b`, 0),
				pat("education:school", `(?i)\b(?:school|college|university)\b`, 0),
				pat("education:textbooks", `(?i)\btextbooks?\b`, 0),
				pat("education:classes", `(?i)\b(?:classes|semester|degree|enroll(?:ed|ment)?)\b`, 0),
				pat("education:student", `(?i)\bstudents?\b`, 0),
			},
		},
		{
			Category:   model.CategoryFamily,
			Confidence: 0.75,
			Signals: []Pattern{
				pat("family:wedding", `(?i)\bwedding\b`, 0),
				pat("family:funeral", `(?i)\b(?:funeral|memorial|burial|cremation)\b`, 0),
				pat("family:passed_away", `(?i)\b(?:passed away|passing of)\b`, 0),
				pat("family:bereavement", `(?i)\blost (?:my|our|her|his) (?:mother|father|mom|dad|husband|wife|son|daughter|brother|sister|grandmother|grandfather)\b`, 0),
				pat("family:reunion", `(?i)\bfamily reunion\b`, 0),
			},
		},
	}
}

func causeEffectRules() []CauseEffectRule {
	return []CauseEffectRule{
		{
			ID:   "transport_blocks_work",
			From: model.CategoryTransportation,
			To:   model.CategoryEmployment,
			Re:   regexp.MustCompile(`(?i)\b(?:can't|cannot|can not|couldn't|unable to|no way to)\s+(?:get|drive|make it)\s+to\s+(?:work|my job|my shift)\b|\b(?:car|truck|vehicle)\b[^.]{0,60}\b(?:lose|lost|losing) (?:my )?job\b`),
		},
		{
			ID:   "job_loss_blocks_rent",
			From: model.CategoryEmployment,
			To:   model.CategoryHousing,
			Re:   regexp.MustCompile(`(?i)\b(?:can't|cannot|can not|couldn't|unable to)\s+(?:pay|afford|make)\s+(?:the |my |our )?(?:rent|mortgage)\b|\b(?:lost (?:my|his|her|our) job|laid off|fired)\b[^.]{0,80}\b(?:rent|evict\w*|mortgage)\b`),
		},
		{
			ID:   "illness_blocks_work",
			From: model.CategoryHealthcare,
			To:   model.CategoryEmployment,
			Re:   regexp.MustCompile(`(?i)\b(?:too sick to work|can't work because|cannot work because|unable to work)\b|\b(?:surgery|illness|injury|treatment)\b[^.]{0,60}\b(?:lost|lose|miss(?:ed|ing)?) (?:my )?(?:job|work)\b`),
		},
		{
			ID:   "danger_forces_move",
			From: model.CategorySafety,
			To:   model.CategoryHousing,
			Re:   regexp.MustCompile(`(?i)\b(?:flee|fled|escape|leave|left)\b[^.]{0,60}\b(?:place to (?:stay|live)|shelter|new apartment|deposit)\b`),
		},
	}
}

func disambiguation() Disambiguation {
	return Disambiguation{
		Violence:         regexp.MustCompile(`(?i)\b(?:abus(?:e|ed|ive|er)|violen(?:ce|t)|assault(?:ed)?|beat(?:s|ing)?\s+(?:me|us|her|him|them)|hit(?:s|ting)?\s+(?:me|us|her|him)|hurt(?:s|ing)?\s+(?:me|us|her|him|the kids)|kill(?:ed)?|weapon|gun|knife|stab(?:bed)?|stalk(?:ed|er|ing)?|restraining order|in danger|afraid for (?:my|our) (?:life|lives|safety)|(?:safety|police|domestic) emergency|call(?:ed)? the police|threat(?:en|ened|ening|s)? to (?:kill|hurt|harm))\b`),
		Eviction:         regexp.MustCompile(`(?i)\b(?:evict(?:ion|ed|ing)?|kick(?:ed|ing)? (?:us|me) out|los(?:e|ing) (?:our|my) (?:home|apartment|house)|foreclos(?:e|ure|ing))\b`),
		MedicalEmergency: regexp.MustCompile(`(?i)\b(?:medical emergency|emergency room|emergency surgery|ambulance|intensive care|icu|life[- ]threatening|heart attack|stroke|overdose|critical condition)\b`),
		JobLoss:          regexp.MustCompile(`(?i)\b(?:lost (?:my|his|her|our) (?:job|work)|laid off|got fired|was fired|been fired|unemployed|hours (?:were |got )?cut)\b`),
		HousingCost:      regexp.MustCompile(`(?i)\b(?:rent|mortgage|housing|landlord|lease|apartment)\b`),
		WorkWords:        regexp.MustCompile(`(?i)\b(?:work|working|job|jobs|shift|shifts|boss|employer|paycheck|workplace|office)\b`),
		RepairWords:      regexp.MustCompile(`(?i)\b(?:repairs?|mechanic|broke down|broken down|transmission|tires?|brakes|engine|alternator|fix (?:my|the) (?:car|truck))\b`),
	}
}
