package taxonomy

// DefaultGroups is the built-in exercise table. Order matters: when a name
// appears twice the later group wins.
var DefaultGroups = []Group{
	// ============================================================================
	// CHEST
	// ============================================================================
	{
		Muscle: MuscleChest, Equipment: EquipmentDumbbell, Laterality: Bilateral,
		Names: []string{"哑铃平板卧推", "哑铃上斜卧推", "哑铃飞鸟", "哑铃飞鸟与斯万夹胸组合训练"},
	},
	{
		Muscle: MuscleChest, Equipment: EquipmentBarbell, Laterality: Bilateral,
		Names: []string{"杠铃平板卧推", "杠铃上斜卧推", "斯万开胸"},
	},
	{
		Muscle: MuscleChest, Equipment: EquipmentMachine, Laterality: Bilateral,
		Names: []string{"史密斯平板卧推", "史密斯上斜卧推", "固定门架开胸", "器械胸推", "蝴蝶机夹胸"},
	},
	{
		Muscle: MuscleChest, Equipment: EquipmentBodyweight, Laterality: Bilateral,
		Names: []string{"俯卧撑"},
	},

	// ============================================================================
	// TRICEPS
	// ============================================================================
	{
		Muscle: MuscleTriceps, Equipment: EquipmentDumbbell, Laterality: Bilateral,
		Names: []string{"哑铃俯身臂屈伸"},
	},
	{
		Muscle: MuscleTriceps, Equipment: EquipmentDumbbell, Laterality: Unilateral,
		Names: []string{"单臂哑铃过头伸展"},
	},
	{
		Muscle: MuscleTriceps, Equipment: EquipmentBarbell, Laterality: Bilateral,
		Names: []string{"杠铃窄握卧推", "仰卧杠铃臂屈伸"},
	},
	{
		Muscle: MuscleTriceps, Equipment: EquipmentMachine, Laterality: Bilateral,
		Names: []string{"绳索下压", "直杠正手下压", "直杠反手下压"},
	},

	// ============================================================================
	// SHOULDERS
	// ============================================================================
	{
		Muscle: MuscleShoulders, Equipment: EquipmentDumbbell, Laterality: Bilateral,
		Names: []string{
			"坐姿哑铃推举", "哑铃侧平举", "站姿哑铃侧平举", "哑铃前平举", "哑铃左右前平举",
			"哑铃复合推举", "哑铃后肩训练", "哑铃俯身飞鸟", "阿诺德推举",
			"哑铃复合推举搭配哑铃侧平举", "哑铃前平举搭配哑铃俯身飞鸟训练",
		},
	},
	{
		Muscle: MuscleShoulders, Equipment: EquipmentBarbell, Laterality: Bilateral,
		Names: []string{"杠铃推举"},
	},
	{
		Muscle: MuscleShoulders, Equipment: EquipmentMachine, Laterality: Bilateral,
		Names: []string{"史密斯推肩", "上斜推肩", "绳索后拉"},
	},

	// ============================================================================
	// BICEPS
	// ============================================================================
	{
		Muscle: MuscleBiceps, Equipment: EquipmentDumbbell, Laterality: Bilateral,
		Names: []string{"坐姿哑铃弯举", "哑铃二头弯举", "锤式弯举", "集中弯举", "站姿哑铃弯举"},
	},
	{
		Muscle: MuscleBiceps, Equipment: EquipmentBarbell, Laterality: Bilateral,
		Names: []string{"杠铃弯举", "EZ杠弯举"},
	},
	{
		Muscle: MuscleBiceps, Equipment: EquipmentMachine, Laterality: Bilateral,
		Names: []string{"钢线二头弯举"},
	},

	// ============================================================================
	// BACK
	// ============================================================================
	{
		Muscle: MuscleBack, Equipment: EquipmentDumbbell, Laterality: Bilateral,
		Names: []string{"哑铃划船", "哑铃硬拉"},
	},
	{
		Muscle: MuscleBack, Equipment: EquipmentDumbbell, Laterality: Unilateral,
		Names: []string{"单臂哑铃划船"},
	},
	{
		Muscle: MuscleBack, Equipment: EquipmentBarbell, Laterality: Bilateral,
		Names: []string{"杠铃硬拉", "杠铃划船", "T杠划船"},
	},
	{
		Muscle: MuscleBack, Equipment: EquipmentMachine, Laterality: Bilateral,
		Names: []string{"坐姿划船", "高位下拉", "低位划船", "引体向上"},
	},

	// ============================================================================
	// LEGS
	// ============================================================================
	{
		Muscle: MuscleLegs, Equipment: EquipmentDumbbell, Laterality: Bilateral,
		Names: []string{"哑铃深蹲", "高脚背深蹲"},
	},
	{
		Muscle: MuscleLegs, Equipment: EquipmentDumbbell, Laterality: Unilateral,
		Names: []string{"交替弓箭步蹲"},
	},
	{
		Muscle: MuscleLegs, Equipment: EquipmentBarbell, Laterality: Bilateral,
		Names: []string{"杠铃深蹲", "前步蹲", "罗马尼亚硬拉"},
	},
	{
		Muscle: MuscleLegs, Equipment: EquipmentMachine, Laterality: Bilateral,
		Names: []string{"史密斯深蹲", "腿举", "腿屈伸", "腿弯举", "坐姿蹲腿"},
	},
	{
		Muscle: MuscleLegs, Equipment: EquipmentBodyweight, Laterality: Bilateral,
		Names: []string{"臀桥"},
	},
	{
		Muscle: MuscleLegs, Equipment: EquipmentBodyweight, Laterality: Unilateral,
		Names: []string{"保加利亚深蹲"},
	},
}
