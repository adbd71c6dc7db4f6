package mos6502

// instruction is one entry of the 256-slot opcode dispatch table: a
// mnemonic for disassembly/tracing, the addressing-mode and opcode
// functions to run, the base cycle cost, and the instruction's total
// length in bytes (opcode + operand). Unimplemented slots carry the
// "???" sentinel mnemonic; Clock halts with ErrInvalidOpcode before
// ever invoking their (unused) AddrMode/Operate functions.
type instruction struct {
	Mnemonic string
	Operate  func(*CPU) uint8
	AddrMode func(*CPU) uint8
	Cycles   uint8
	Length   uint8
}

var xxx = instruction{"???", opXXX, amIMP, 2, 1}

// opcodeTable is the 16x16 dispatch table, laid out in the
// conventional high-nibble/low-nibble order of the 6502's documented
// instruction set (151 entries); the remaining 105 slots are
// undocumented opcodes, which this core declines to implement.
var opcodeTable = [256]instruction{
	// 0x00-0x0F
	{"BRK", opBRK, amIMP, 7, 1}, {"ORA", opORA, amIZX, 6, 2}, xxx, xxx,
	xxx, {"ORA", opORA, amZP0, 3, 2}, {"ASL", opASL, amZP0, 5, 2}, xxx,
	{"PHP", opPHP, amIMP, 3, 1}, {"ORA", opORA, amIMM, 2, 2}, {"ASL", opASL, amACC, 2, 1}, xxx,
	xxx, {"ORA", opORA, amABS, 4, 3}, {"ASL", opASL, amABS, 6, 3}, xxx,

	// 0x10-0x1F
	{"BPL", opBPL, amREL, 2, 2}, {"ORA", opORA, amIZY, 5, 2}, xxx, xxx,
	xxx, {"ORA", opORA, amZPX, 4, 2}, {"ASL", opASL, amZPX, 6, 2}, xxx,
	{"CLC", opCLC, amIMP, 2, 1}, {"ORA", opORA, amABY, 4, 3}, xxx, xxx,
	xxx, {"ORA", opORA, amABX, 4, 3}, {"ASL", opASL, amABX, 7, 3}, xxx,

	// 0x20-0x2F
	{"JSR", opJSR, amABS, 6, 3}, {"AND", opAND, amIZX, 6, 2}, xxx, xxx,
	{"BIT", opBIT, amZP0, 3, 2}, {"AND", opAND, amZP0, 3, 2}, {"ROL", opROL, amZP0, 5, 2}, xxx,
	{"PLP", opPLP, amIMP, 4, 1}, {"AND", opAND, amIMM, 2, 2}, {"ROL", opROL, amACC, 2, 1}, xxx,
	{"BIT", opBIT, amABS, 4, 3}, {"AND", opAND, amABS, 4, 3}, {"ROL", opROL, amABS, 6, 3}, xxx,

	// 0x30-0x3F
	{"BMI", opBMI, amREL, 2, 2}, {"AND", opAND, amIZY, 5, 2}, xxx, xxx,
	xxx, {"AND", opAND, amZPX, 4, 2}, {"ROL", opROL, amZPX, 6, 2}, xxx,
	{"SEC", opSEC, amIMP, 2, 1}, {"AND", opAND, amABY, 4, 3}, xxx, xxx,
	xxx, {"AND", opAND, amABX, 4, 3}, {"ROL", opROL, amABX, 7, 3}, xxx,

	// 0x40-0x4F
	{"RTI", opRTI, amIMP, 6, 1}, {"EOR", opEOR, amIZX, 6, 2}, xxx, xxx,
	xxx, {"EOR", opEOR, amZP0, 3, 2}, {"LSR", opLSR, amZP0, 5, 2}, xxx,
	{"PHA", opPHA, amIMP, 3, 1}, {"EOR", opEOR, amIMM, 2, 2}, {"LSR", opLSR, amACC, 2, 1}, xxx,
	{"JMP", opJMP, amABS, 3, 3}, {"EOR", opEOR, amABS, 4, 3}, {"LSR", opLSR, amABS, 6, 3}, xxx,

	// 0x50-0x5F
	{"BVC", opBVC, amREL, 2, 2}, {"EOR", opEOR, amIZY, 5, 2}, xxx, xxx,
	xxx, {"EOR", opEOR, amZPX, 4, 2}, {"LSR", opLSR, amZPX, 6, 2}, xxx,
	{"CLI", opCLI, amIMP, 2, 1}, {"EOR", opEOR, amABY, 4, 3}, xxx, xxx,
	xxx, {"EOR", opEOR, amABX, 4, 3}, {"LSR", opLSR, amABX, 7, 3}, xxx,

	// 0x60-0x6F
	{"RTS", opRTS, amIMP, 6, 1}, {"ADC", opADC, amIZX, 6, 2}, xxx, xxx,
	xxx, {"ADC", opADC, amZP0, 3, 2}, {"ROR", opROR, amZP0, 5, 2}, xxx,
	{"PLA", opPLA, amIMP, 4, 1}, {"ADC", opADC, amIMM, 2, 2}, {"ROR", opROR, amACC, 2, 1}, xxx,
	{"JMP", opJMP, amIND, 5, 3}, {"ADC", opADC, amABS, 4, 3}, {"ROR", opROR, amABS, 6, 3}, xxx,

	// 0x70-0x7F
	{"BVS", opBVS, amREL, 2, 2}, {"ADC", opADC, amIZY, 5, 2}, xxx, xxx,
	xxx, {"ADC", opADC, amZPX, 4, 2}, {"ROR", opROR, amZPX, 6, 2}, xxx,
	{"SEI", opSEI, amIMP, 2, 1}, {"ADC", opADC, amABY, 4, 3}, xxx, xxx,
	xxx, {"ADC", opADC, amABX, 4, 3}, {"ROR", opROR, amABX, 7, 3}, xxx,

	// 0x80-0x8F
	xxx, {"STA", opSTA, amIZX, 6, 2}, xxx, xxx,
	{"STY", opSTY, amZP0, 3, 2}, {"STA", opSTA, amZP0, 3, 2}, {"STX", opSTX, amZP0, 3, 2}, xxx,
	{"DEY", opDEY, amIMP, 2, 1}, xxx, {"TXA", opTXA, amIMP, 2, 1}, xxx,
	{"STY", opSTY, amABS, 4, 3}, {"STA", opSTA, amABS, 4, 3}, {"STX", opSTX, amABS, 4, 3}, xxx,

	// 0x90-0x9F
	{"BCC", opBCC, amREL, 2, 2}, {"STA", opSTA, amIZY, 6, 2}, xxx, xxx,
	{"STY", opSTY, amZPX, 4, 2}, {"STA", opSTA, amZPX, 4, 2}, {"STX", opSTX, amZPY, 4, 2}, xxx,
	{"TYA", opTYA, amIMP, 2, 1}, {"STA", opSTA, amABY, 5, 3}, {"TXS", opTXS, amIMP, 2, 1}, xxx,
	xxx, {"STA", opSTA, amABX, 5, 3}, xxx, xxx,

	// 0xA0-0xAF
	{"LDY", opLDY, amIMM, 2, 2}, {"LDA", opLDA, amIZX, 6, 2}, {"LDX", opLDX, amIMM, 2, 2}, xxx,
	{"LDY", opLDY, amZP0, 3, 2}, {"LDA", opLDA, amZP0, 3, 2}, {"LDX", opLDX, amZP0, 3, 2}, xxx,
	{"TAY", opTAY, amIMP, 2, 1}, {"LDA", opLDA, amIMM, 2, 2}, {"TAX", opTAX, amIMP, 2, 1}, xxx,
	{"LDY", opLDY, amABS, 4, 3}, {"LDA", opLDA, amABS, 4, 3}, {"LDX", opLDX, amABS, 4, 3}, xxx,

	// 0xB0-0xBF
	{"BCS", opBCS, amREL, 2, 2}, {"LDA", opLDA, amIZY, 5, 2}, xxx, xxx,
	{"LDY", opLDY, amZPX, 4, 2}, {"LDA", opLDA, amZPX, 4, 2}, {"LDX", opLDX, amZPY, 4, 2}, xxx,
	{"CLV", opCLV, amIMP, 2, 1}, {"LDA", opLDA, amABY, 4, 3}, {"TSX", opTSX, amIMP, 2, 1}, xxx,
	{"LDY", opLDY, amABX, 4, 3}, {"LDA", opLDA, amABX, 4, 3}, {"LDX", opLDX, amABY, 4, 3}, xxx,

	// 0xC0-0xCF
	{"CPY", opCPY, amIMM, 2, 2}, {"CMP", opCMP, amIZX, 6, 2}, xxx, xxx,
	{"CPY", opCPY, amZP0, 3, 2}, {"CMP", opCMP, amZP0, 3, 2}, {"DEC", opDEC, amZP0, 5, 2}, xxx,
	{"INY", opINY, amIMP, 2, 1}, {"CMP", opCMP, amIMM, 2, 2}, {"DEX", opDEX, amIMP, 2, 1}, xxx,
	{"CPY", opCPY, amABS, 4, 3}, {"CMP", opCMP, amABS, 4, 3}, {"DEC", opDEC, amABS, 6, 3}, xxx,

	// 0xD0-0xDF
	{"BNE", opBNE, amREL, 2, 2}, {"CMP", opCMP, amIZY, 5, 2}, xxx, xxx,
	xxx, {"CMP", opCMP, amZPX, 4, 2}, {"DEC", opDEC, amZPX, 6, 2}, xxx,
	{"CLD", opCLD, amIMP, 2, 1}, {"CMP", opCMP, amABY, 4, 3}, xxx, xxx,
	xxx, {"CMP", opCMP, amABX, 4, 3}, {"DEC", opDEC, amABX, 7, 3}, xxx,

	// 0xE0-0xEF
	{"CPX", opCPX, amIMM, 2, 2}, {"SBC", opSBC, amIZX, 6, 2}, xxx, xxx,
	{"CPX", opCPX, amZP0, 3, 2}, {"SBC", opSBC, amZP0, 3, 2}, {"INC", opINC, amZP0, 5, 2}, xxx,
	{"INX", opINX, amIMP, 2, 1}, {"SBC", opSBC, amIMM, 2, 2}, {"NOP", opNOP, amIMP, 2, 1}, xxx,
	{"CPX", opCPX, amABS, 4, 3}, {"SBC", opSBC, amABS, 4, 3}, {"INC", opINC, amABS, 6, 3}, xxx,

	// 0xF0-0xFF
	{"BEQ", opBEQ, amREL, 2, 2}, {"SBC", opSBC, amIZY, 5, 2}, xxx, xxx,
	xxx, {"SBC", opSBC, amZPX, 4, 2}, {"INC", opINC, amZPX, 6, 2}, xxx,
	{"SED", opSED, amIMP, 2, 1}, {"SBC", opSBC, amABY, 4, 3}, xxx, xxx,
	xxx, {"SBC", opSBC, amABX, 4, 3}, {"INC", opINC, amABX, 7, 3}, xxx,
}
