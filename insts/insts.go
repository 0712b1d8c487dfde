// Package insts provides MIPS32 instruction definitions, decoding and
// encoding for the single-cycle simulator.
//
// This package turns raw 32-bit instruction words into structured
// instruction representations and back. It supports:
//   - R-type arithmetic: add, addu, sub, subu
//   - I-type arithmetic and logic: addi, addiu, slti, sltiu, andi, ori, xori, lui
//   - Branches: beq, bne, blez, bgtz
//   - Jumps: j, jal
//   - Memory: lw, sw
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x200101FF) // addi $1, $0, 511
//	fmt.Printf("Op: %v, Rt: %d, Rs: %d, Imm: %d\n", inst.Op, inst.Rt, inst.Rs, inst.Imm)
package insts
