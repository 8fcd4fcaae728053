package prompt

// Template is one bundled topic: a name, three image prompts in slide
// order, and the narration script.
type Template struct {
	Topic        string
	ImagePrompts []string
	Script       string
}

// Catalog is static bundled data, not a collaborator; topic selection
// never fails.
var Catalog = []Template{
	{
		Topic: "기술 트렌드",
		ImagePrompts: []string{
			"futuristic technology, digital innovation, modern tech",
			"AI artificial intelligence, neural networks, data visualization",
			"smart devices, IoT internet of things, connected world",
		},
		Script: "기술의 발전은 우리 삶을 변화시키고 있습니다. AI와 IoT가 만나 더 스마트한 세상이 만들어지고 있어요. 미래를 준비하는 지금, 기술과 함께 성장하세요.",
	},
	{
		Topic: "건강한 라이프스타일",
		ImagePrompts: []string{
			"healthy lifestyle, fitness, wellness, active living",
			"fresh fruits and vegetables, nutritious food, balanced diet",
			"yoga meditation, mindfulness, mental health, relaxation",
		},
		Script: "건강한 삶은 하루아침에 만들어지지 않아요. 작은 습관의 변화가 큰 변화를 만듭니다. 오늘부터 시작하는 건강한 라이프스타일, 함께해요.",
	},
	{
		Topic: "창의적 아이디어",
		ImagePrompts: []string{
			"creative ideas, innovation, brainstorming, lightbulb concept",
			"artistic expression, colorful design, imagination",
			"problem solving, creative thinking, unique solutions",
		},
		Script: "창의력은 제한이 없어요. 작은 아이디어가 세상을 바꿀 수 있습니다. 당신의 독특한 생각을 실현해보세요. 창의적인 순간이 기다리고 있어요.",
	},
	{
		Topic: "자기계발",
		ImagePrompts: []string{
			"self improvement, personal growth, learning, development",
			"books reading, knowledge, education, wisdom",
			"goal setting, achievement, success, motivation",
		},
		Script: "자기계발은 투자입니다. 매일 조금씩 배우고 성장하는 당신, 그 모습이 아름다워요. 오늘도 한 걸음 더 나아가는 당신을 응원합니다.",
	},
	{
		Topic: "환경 보호",
		ImagePrompts: []string{
			"nature conservation, green energy, sustainability",
			"renewable energy, solar panels, wind turbines, eco friendly",
			"clean environment, recycling, zero waste, planet earth",
		},
		Script: "지구를 지키는 것은 우리의 책임입니다. 작은 실천이 모여 큰 변화를 만듭니다. 함께 만들어가는 지속가능한 미래, 지금 시작해요.",
	},
}
