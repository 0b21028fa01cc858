package glyph

// 轮廓为简化描摹：保留符号的辨识形状与正确度量，不追求字体级细节。
// 修改宽高时注意 engrave 对符头宽度（符干贴靠）与临时记号宽度
// （左侧净空）有几何依赖。

var table = map[ID]Glyph{
	// 符头：实心为旋转椭圆，二分/全音符带内孔（非零环绕规则留白）。
	NoteheadQuarter: {
		Path: "M0 0.42 C0.12 -0.48 1.1 -1.06 2 -0.86 C2.74 -0.68 2.9 0.1 2.46 0.62 C1.96 1.2 0.9 1.28 0.34 0.94 C0.08 0.78 -0.04 0.6 0 0.42 Z",
		W:    2.7, H: 2.0,
	},
	NoteheadHalf: {
		Path: "M0 0.42 C0.12 -0.48 1.1 -1.06 2 -0.86 C2.74 -0.68 2.9 0.1 2.46 0.62 C1.96 1.2 0.9 1.28 0.34 0.94 C0.08 0.78 -0.04 0.6 0 0.42 Z " +
			"M0.62 0.5 C0.54 0.72 0.78 0.88 1.18 0.76 C1.82 0.56 2.3 0.08 2.18 -0.18 C2.08 -0.4 1.7 -0.36 1.3 -0.14 C0.96 0.04 0.68 0.3 0.62 0.5 Z",
		W: 2.7, H: 2.0,
	},
	NoteheadWhole: {
		Path: "M0 0 C0 -0.74 0.8 -1.1 1.75 -1.1 C2.7 -1.1 3.5 -0.74 3.5 0 C3.5 0.74 2.7 1.1 1.75 1.1 C0.8 1.1 0 0.74 0 0 Z " +
			"M0.9 -0.1 C0.82 0.42 1.18 0.82 1.62 0.82 C2.1 0.82 2.5 0.44 2.56 -0.08 C2.62 -0.56 2.3 -0.88 1.84 -0.88 C1.36 -0.88 0.98 -0.54 0.9 -0.1 Z",
		W: 3.5, H: 2.2,
	},
	Dot: {
		Path: "M0 0 C0 -0.36 0.3 -0.62 0.62 -0.62 C0.94 -0.62 1.24 -0.36 1.24 0 C1.24 0.36 0.94 0.62 0.62 0.62 C0.3 0.62 0 0.36 0 0 Z",
		W:    1.24, H: 1.24,
	},

	// 临时记号
	AccSharp: {
		Path: "M0.52 -3 L0.78 -3 L0.78 3 L0.52 3 Z M1.42 -3.2 L1.68 -3.2 L1.68 2.8 L1.42 2.8 Z " +
			"M0.1 -1.3 L2.1 -1.75 L2.1 -1.05 L0.1 -0.6 Z M0.1 0.65 L2.1 0.2 L2.1 0.9 L0.1 1.35 Z",
		W: 2.2, H: 6.4,
	},
	AccFlat: {
		Path: "M0 -3.6 L0.3 -3.6 L0.3 1.5 C0.75 1.05 1.55 0.8 1.85 1.25 C2.2 1.8 1.5 2.7 0.3 3.35 L0 3.35 Z " +
			"M0.3 1.95 C0.85 1.5 1.35 1.5 1.4 1.9 C1.45 2.35 0.95 2.85 0.3 3.1 Z",
		W: 1.9, H: 7.0, VCenter: 1.4,
	},
	AccNatural: {
		Path: "M0 -2.9 L0.28 -2.9 L0.28 -0.6 L1.5 -0.9 L1.5 2.9 L1.22 2.9 L1.22 0.6 L0 0.9 Z " +
			"M0.28 -0.1 L1.22 -0.34 L1.22 0.14 L0.28 0.38 Z",
		W: 1.5, H: 5.8,
	},
	AccDblSharp: {
		Path: "M0 -1 L0.7 -1 L1.1 -0.45 L1.5 -1 L2.2 -1 L1.5 0 L2.2 1 L1.5 1 L1.1 0.45 L0.7 1 L0 1 L0.7 0 Z",
		W:    2.2, H: 2.0,
	},
	AccDblFlat: {
		Path: "M0 -3.6 L0.3 -3.6 L0.3 1.5 C0.7 1.1 1.3 0.9 1.55 1.25 C1.85 1.7 1.35 2.6 0.3 3.35 L0 3.35 Z " +
			"M1.6 -3.6 L1.9 -3.6 L1.9 1.5 C2.35 1.05 3.15 0.8 3.45 1.25 C3.8 1.8 3.1 2.7 1.9 3.35 L1.6 3.35 Z",
		W: 3.5, H: 7.0, VCenter: 1.4,
	},

	// 谱号：锚点在定位线上（G 谱号在 G 线，F 谱号在 F 线）。
	ClefG: {
		Path: "M2.6 -6.2 C3.6 -6 4.1 -5 3.9 -3.9 C3.7 -2.8 2.9 -1.7 1.9 -0.7 C1 0.2 0.4 1.2 0.5 2.3 " +
			"C0.6 3.6 1.7 4.5 3 4.4 C4.2 4.3 5 3.4 4.9 2.3 C4.8 1.3 4 0.6 3.1 0.7 C2.3 0.8 1.8 1.4 1.9 2.1 " +
			"C2 2.7 2.5 3.1 3 3 C2.7 3.3 2.1 3.3 1.7 2.9 C1.2 2.4 1.2 1.5 1.8 0.8 C2.5 0 3.6 -0.2 4.4 0.4 " +
			"C5.3 1.1 5.5 2.5 4.8 3.6 C4.1 4.7 2.7 5.2 1.5 4.8 C0.2 4.3 -0.4 3 -0.1 1.6 " +
			"C0.2 0.3 1.2 -0.8 2.1 -1.8 C3 -2.8 3.5 -3.8 3.4 -4.8 C3.3 -5.5 3 -5.9 2.6 -6.2 Z " +
			"M2.9 4.9 L3.2 6.6 C3.3 7.2 2.9 7.7 2.3 7.7 C1.8 7.7 1.4 7.3 1.4 6.9 C1.4 6.5 1.7 6.2 2.1 6.2 " +
			"C2.4 6.2 2.6 6.4 2.7 6.6 L2.5 4.95 Z",
		W: 5.5, H: 14.6, VCenter: -1.2,
	},
	ClefF: {
		Path: "M0 2.6 C0.1 0.6 1.3 -0.9 3 -0.9 C4.6 -0.9 5.6 0.1 5.6 1.5 C5.6 3.7 3.8 5.6 0.4 7.2 L0.3 6.9 " +
			"C2.9 5.4 4.3 3.7 4.3 1.8 C4.3 0.6 3.7 -0.3 2.8 -0.3 C2 -0.3 1.4 0.3 1.3 1.1 C1.7 0.9 2.2 1 2.5 1.4 " +
			"C2.9 1.9 2.7 2.6 2.2 2.9 C1.6 3.3 0.8 3.1 0.4 2.5 Z " +
			"M6.3 0 C6.3 -0.35 6.6 -0.6 6.9 -0.6 C7.2 -0.6 7.5 -0.35 7.5 0 C7.5 0.35 7.2 0.6 6.9 0.6 C6.6 0.6 6.3 0.35 6.3 0 Z " +
			"M6.3 2.2 C6.3 1.85 6.6 1.6 6.9 1.6 C7.2 1.6 7.5 1.85 7.5 2.2 C7.5 2.55 7.2 2.8 6.9 2.8 C6.6 2.8 6.3 2.55 6.3 2.2 Z",
		W: 7.5, H: 8.2, VCenter: 2.4,
	},
	ClefC: {
		Path: "M0 -4 L0.9 -4 L0.9 4 L0 4 Z M1.3 -4 L1.7 -4 L1.7 4 L1.3 4 Z " +
			"M1.9 -0.2 C2.5 -1.2 3.4 -1.8 4.3 -1.6 C5.3 -1.4 5.8 -0.4 5.5 0.5 C5.9 0.3 6.2 -0.2 6.1 -0.9 " +
			"C6 -2 5 -2.8 3.8 -2.6 C3 -2.5 2.3 -2 1.9 -1.3 L1.9 -3.9 L2.2 -3.9 L2.2 -4 L1.9 -4 Z " +
			"M1.9 0.2 C2.5 1.2 3.4 1.8 4.3 1.6 C5.3 1.4 5.8 0.4 5.5 -0.5 C5.9 -0.3 6.2 0.2 6.1 0.9 " +
			"C6 2 5 2.8 3.8 2.6 C3 2.5 2.3 2 1.9 1.3 L1.9 3.9 L2.2 3.9 L2.2 4 L1.9 4 Z",
		W: 6.2, H: 8.0,
	},

	// 休止符：全/二分休止符挂在谱线上，锚点即所在线。
	RestWhole: {
		Path: "M0 0 L2.6 0 L2.6 0.9 L0 0.9 Z",
		W:    2.6, H: 0.9, VCenter: 0.45,
	},
	RestHalf: {
		Path: "M0 -0.9 L2.6 -0.9 L2.6 0 L0 0 Z",
		W:    2.6, H: 0.9, VCenter: -0.45,
	},
	RestQuarter: {
		Path: "M0.5 -3 L1.1 -2.2 C0.5 -1.5 0.5 -0.9 1.1 -0.1 L1.9 0.9 C1 0.7 0.5 0.9 0.6 1.6 C0.65 2.1 1 2.6 1.6 3 " +
			"C0.6 2.8 -0.1 2.1 0 1.3 C0.07 0.75 0.5 0.45 1.1 0.5 L0.25 -0.6 C0.85 -1.3 0.9 -2.1 0.5 -3 Z",
		W: 1.9, H: 6.0,
	},
	Rest8th: {
		Path: "M0 -1.4 C0 -1.85 0.35 -2.2 0.8 -2.2 C1.25 -2.2 1.6 -1.85 1.6 -1.4 C1.6 -1 1.3 -0.7 0.9 -0.65 " +
			"C1.3 -0.5 1.8 -0.6 2.2 -1 L2.5 -1 L1.2 2.2 L0.8 2.2 L1.9 -0.6 C1.3 -0.3 0.6 -0.4 0.25 -0.8 C0.1 -0.95 0 -1.15 0 -1.4 Z",
		W: 2.5, H: 4.4,
	},
	Rest16th: {
		Path: "M0 -1.4 C0 -1.85 0.35 -2.2 0.8 -2.2 C1.25 -2.2 1.6 -1.85 1.6 -1.4 C1.6 -1 1.3 -0.7 0.9 -0.65 " +
			"C1.3 -0.5 1.8 -0.6 2.2 -1 L2.5 -1 L1 4.2 L0.6 4.2 L1.3 1.6 C0.8 1.9 0.2 1.85 -0.1 1.45 " +
			"C-0.35 1.1 -0.3 0.6 0 0.35 C0.3 0.1 0.8 0.15 1.05 0.45 C1.25 0.7 1.25 1 1.1 1.25 L1.9 -0.6 " +
			"C1.3 -0.3 0.6 -0.4 0.25 -0.8 C0.1 -0.95 0 -1.15 0 -1.4 Z",
		W: 2.5, H: 6.4,
	},
	Rest32nd: {
		Path: "M0.2 -3.4 C0.2 -3.85 0.55 -4.2 1 -4.2 C1.45 -4.2 1.8 -3.85 1.8 -3.4 C1.8 -3 1.5 -2.7 1.1 -2.65 " +
			"C1.5 -2.5 2 -2.6 2.4 -3 L2.7 -3 L1 4.2 L0.6 4.2 L1.3 1.6 C0.8 1.9 0.2 1.85 -0.1 1.45 " +
			"C-0.35 1.1 -0.3 0.6 0 0.35 C0.3 0.1 0.8 0.15 1.05 0.45 L1.7 -1.2 C1.2 -0.9 0.55 -1 0.2 -1.4 " +
			"C-0.05 -1.7 -0.05 -2.2 0.25 -2.5 C0.5 -2.75 0.95 -2.75 1.2 -2.5 L2.1 -2.6 C1.5 -2.3 0.8 -2.4 0.45 -2.8 C0.3 -2.95 0.2 -3.15 0.2 -3.4 Z",
		W: 2.7, H: 8.4,
	},
	Rest64th: {
		Path: "M0.2 -5.4 C0.2 -5.85 0.55 -6.2 1 -6.2 C1.45 -6.2 1.8 -5.85 1.8 -5.4 C1.8 -5 1.5 -4.7 1.1 -4.65 " +
			"C1.5 -4.5 2 -4.6 2.4 -5 L2.7 -5 L0.8 4.2 L0.4 4.2 L1.1 1.6 C0.6 1.9 0 1.85 -0.3 1.45 " +
			"C-0.55 1.1 -0.5 0.6 -0.2 0.35 C0.1 0.1 0.6 0.15 0.85 0.45 L1.5 -1.2 C1 -0.9 0.35 -1 0 -1.4 " +
			"C-0.25 -1.7 -0.25 -2.2 0.05 -2.5 C0.3 -2.75 0.75 -2.75 1 -2.5 L1.6 -3.2 C1.1 -2.9 0.45 -3 0.1 -3.4 " +
			"C-0.15 -3.7 -0.15 -4.2 0.15 -4.5 C0.4 -4.75 0.85 -4.75 1.1 -4.5 L2 -4.6 C1.4 -4.3 0.8 -4.4 0.45 -4.8 C0.3 -4.95 0.2 -5.15 0.2 -5.4 Z",
		W: 2.7, H: 10.4,
	},

	// 符尾：锚点在符干端点。
	FlagU8th: {
		Path: "M0 0 L0.3 0 C0.5 1.6 1.6 2.3 2.1 3.4 C2.5 4.3 2.4 5.3 1.9 6.1 L1.6 6.1 C2 5.2 2 4.3 1.5 3.5 C1.1 2.9 0.5 2.5 0 2.3 Z",
		W:    2.5, H: 6.1,
	},
	FlagU16th: {
		Path: "M0 0 L0.3 0 C0.5 1.2 1.5 1.7 2 2.6 C2.3 3.2 2.35 3.9 2.1 4.5 C2.5 5.3 2.5 6.3 2 7.1 L1.7 7.1 " +
			"C2.1 6.3 2.1 5.4 1.6 4.7 C1.2 4.1 0.5 3.7 0 3.5 L0 2.6 C0.9 2.9 1.6 3.4 1.9 4 C2.05 3.4 1.9 2.9 1.5 2.4 C1.1 1.9 0.4 1.6 0 1.5 Z",
		W: 2.5, H: 7.1,
	},
	FlagU32nd: {
		Path: "M0 0 L0.3 0 C0.5 1 1.4 1.4 1.9 2.2 C2.2 2.7 2.25 3.3 2.05 3.8 C2.35 4.3 2.4 4.9 2.2 5.4 " +
			"C2.55 6.2 2.5 7.2 2 8 L1.7 8 C2.1 7.2 2.1 6.3 1.6 5.6 C1.2 5 0.5 4.7 0 4.5 L0 3.7 " +
			"C0.9 4 1.5 4.4 1.8 5 C1.95 4.5 1.8 4 1.4 3.5 C1 3.1 0.4 2.8 0 2.7 L0 1.9 C0.9 2.2 1.5 2.6 1.8 3.1 C1.9 2.6 1.75 2.1 1.35 1.7 C0.95 1.3 0.4 1.1 0 1 Z",
		W: 2.6, H: 8.0,
	},
	FlagU64th: {
		Path: "M0 0 L0.3 0 C0.5 0.9 1.3 1.2 1.8 1.9 C2.1 2.3 2.15 2.8 2 3.2 C2.3 3.7 2.35 4.2 2.15 4.7 " +
			"C2.45 5.2 2.5 5.7 2.3 6.2 C2.6 7 2.55 8 2.05 8.8 L1.75 8.8 C2.15 8 2.15 7.1 1.65 6.4 C1.25 5.8 0.5 5.5 0 5.3 L0 4.5 " +
			"C0.9 4.8 1.5 5.2 1.8 5.8 C1.95 5.3 1.8 4.8 1.4 4.3 C1 3.9 0.4 3.6 0 3.5 L0 2.7 C0.9 3 1.5 3.4 1.8 3.9 " +
			"C1.9 3.4 1.75 2.9 1.35 2.5 C0.95 2.1 0.4 1.9 0 1.8 L0 1 C0.9 1.3 1.5 1.6 1.8 2.1 C1.9 1.7 1.7 1.2 1.3 0.9 C0.95 0.6 0.4 0.45 0 0.4 Z",
		W: 2.6, H: 8.8,
	},
	FlagD8th: {
		Path: "M0 0 L0.3 0 C0.5 -1.6 1.6 -2.3 2.1 -3.4 C2.5 -4.3 2.4 -5.3 1.9 -6.1 L1.6 -6.1 C2 -5.2 2 -4.3 1.5 -3.5 C1.1 -2.9 0.5 -2.5 0 -2.3 Z",
		W:    2.5, H: 6.1,
	},
	FlagD16th: {
		Path: "M0 0 L0.3 0 C0.5 -1.2 1.5 -1.7 2 -2.6 C2.3 -3.2 2.35 -3.9 2.1 -4.5 C2.5 -5.3 2.5 -6.3 2 -7.1 L1.7 -7.1 " +
			"C2.1 -6.3 2.1 -5.4 1.6 -4.7 C1.2 -4.1 0.5 -3.7 0 -3.5 L0 -2.6 C0.9 -2.9 1.6 -3.4 1.9 -4 C2.05 -3.4 1.9 -2.9 1.5 -2.4 C1.1 -1.9 0.4 -1.6 0 -1.5 Z",
		W: 2.5, H: 7.1,
	},
	FlagD32nd: {
		Path: "M0 0 L0.3 0 C0.5 -1 1.4 -1.4 1.9 -2.2 C2.2 -2.7 2.25 -3.3 2.05 -3.8 C2.35 -4.3 2.4 -4.9 2.2 -5.4 " +
			"C2.55 -6.2 2.5 -7.2 2 -8 L1.7 -8 C2.1 -7.2 2.1 -6.3 1.6 -5.6 C1.2 -5 0.5 -4.7 0 -4.5 L0 -3.7 " +
			"C0.9 -4 1.5 -4.4 1.8 -5 C1.95 -4.5 1.8 -4 1.4 -3.5 C1 -3.1 0.4 -2.8 0 -2.7 L0 -1.9 C0.9 -2.2 1.5 -2.6 1.8 -3.1 C1.9 -2.6 1.75 -2.1 1.35 -1.7 C0.95 -1.3 0.4 -1.1 0 -1 Z",
		W: 2.6, H: 8.0,
	},
	FlagD64th: {
		Path: "M0 0 L0.3 0 C0.5 -0.9 1.3 -1.2 1.8 -1.9 C2.1 -2.3 2.15 -2.8 2 -3.2 C2.3 -3.7 2.35 -4.2 2.15 -4.7 " +
			"C2.45 -5.2 2.5 -5.7 2.3 -6.2 C2.6 -7 2.55 -8 2.05 -8.8 L1.75 -8.8 C2.15 -8 2.15 -7.1 1.65 -6.4 C1.25 -5.8 0.5 -5.5 0 -5.3 L0 -4.5 " +
			"C0.9 -4.8 1.5 -5.2 1.8 -5.8 C1.95 -5.3 1.8 -4.8 1.4 -4.3 C1 -3.9 0.4 -3.6 0 -3.5 L0 -2.7 C0.9 -3 1.5 -3.4 1.8 -3.9 " +
			"C1.9 -3.4 1.75 -2.9 1.35 -2.5 C0.95 -2.1 0.4 -1.9 0 -1.8 L0 -1 C0.9 -1.3 1.5 -1.6 1.8 -2.1 C1.9 -1.7 1.7 -1.2 1.3 -0.9 C0.95 -0.6 0.4 -0.45 0 -0.4 Z",
		W: 2.6, H: 8.8,
	},

	// 拍号记号
	TimeCommon: {
		Path: "M3.4 1.3 C3.1 2.1 2.4 2.6 1.6 2.6 C0.5 2.6 -0.3 1.5 -0.3 0 C-0.3 -1.5 0.5 -2.6 1.7 -2.6 C2.5 -2.6 3.2 -2.1 3.4 -1.3 L3.1 -1.2 " +
			"C2.9 -1.9 2.4 -2.3 1.8 -2.3 C0.9 -2.3 0.4 -1.4 0.4 0 C0.4 1.4 0.9 2.3 1.8 2.3 C2.4 2.3 2.9 1.9 3.1 1.2 Z",
		W: 3.7, H: 5.2,
	},
	TimeCut: {
		Path: "M3.4 1.3 C3.1 2.1 2.4 2.6 1.6 2.6 C0.5 2.6 -0.3 1.5 -0.3 0 C-0.3 -1.5 0.5 -2.6 1.7 -2.6 C2.5 -2.6 3.2 -2.1 3.4 -1.3 L3.1 -1.2 " +
			"C2.9 -1.9 2.4 -2.3 1.8 -2.3 C0.9 -2.3 0.4 -1.4 0.4 0 C0.4 1.4 0.9 2.3 1.8 2.3 C2.4 2.3 2.9 1.9 3.1 1.2 Z " +
			"M1.5 -3.4 L1.9 -3.4 L1.9 3.4 L1.5 3.4 Z",
		W: 3.7, H: 6.8,
	},

	// 装饰记号
	Fermata: {
		Path: "M0 1 C0.4 -0.8 1.6 -1.8 3 -1.8 C4.4 -1.8 5.6 -0.8 6 1 L5.6 1 C5.1 -0.4 4.2 -1.2 3 -1.2 C1.8 -1.2 0.9 -0.4 0.4 1 Z " +
			"M2.5 0.5 C2.5 0.2 2.7 0 3 0 C3.3 0 3.5 0.2 3.5 0.5 C3.5 0.8 3.3 1 3 1 C2.7 1 2.5 0.8 2.5 0.5 Z",
		W: 6.0, H: 2.8,
	},
	Staccato: {
		Path: "M0 0 C0 -0.3 0.25 -0.55 0.55 -0.55 C0.85 -0.55 1.1 -0.3 1.1 0 C1.1 0.3 0.85 0.55 0.55 0.55 C0.25 0.55 0 0.3 0 0 Z",
		W:    1.1, H: 1.1,
	},
	Accent: {
		Path: "M0 -1.2 L3.2 -0.15 L3.2 0.15 L0 1.2 L0 0.85 L2.4 0 L0 -0.85 Z",
		W:    3.2, H: 2.4,
	},
	Mordent: {
		Path: "M0 0.8 L0 0.3 L1 -0.8 L2 0.3 L3 -0.8 L4 0.3 L4 0.8 L3 -0.3 L2 0.8 L1 -0.3 Z",
		W:    4.0, H: 1.6,
	},
}
