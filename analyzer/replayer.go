package analyzer

import (
	"fmt"

	"github.com/pattyshack/tilegen/analyzer/allocator"
	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/serializer"
)

// replayer walks the unit's event stream and decides where each value comes
// from.  The same decision logic is used by the discovery pass (without any
// auxiliary / accumulator allocation) and by the emission pass.
//
// Cursor model: SP always addresses the screen cursor when words are pushed.
// Bytes are written through HL, which is derived from SP on demand.  Either
// register may be stale relative to the other.
type replayer struct {
	*CompilationUnit

	file *allocator.RegisterFile

	// nil during discovery.
	auxiliary   *allocator.AllocationCursor[uint16]
	accumulator *allocator.AllocationCursor[uint8]

	// nil unless the index tier is enabled.
	plan          *allocator.AllocationCursor[uint16]
	planRegisters []arch.RegisterName

	cursorInHL bool // HL holds the current cursor
	stackStale bool // SP lags behind HL

	events     []RegisterEvent
	operations []arch.Operation
}

func newReplayer(unit *CompilationUnit) *replayer {
	return &replayer{
		CompilationUnit: unit,
		file:            allocator.NewRegisterFile(),
	}
}

func (replayer *replayer) run() {
	replayer.Source.Reset()

	now := allocator.Time(0)
	for {
		event := replayer.Source.Next()
		switch event.Kind {
		case serializer.StopEvent:
			return
		case serializer.EmitWordEvent:
			replayer.word(now, event.Value)
			now++
		case serializer.EmitByteEvent:
			replayer.byte(now, uint8(event.Value))
			now++
		case serializer.MoveCursorEvent:
			replayer.move(event.Delta)
		default:
			panic(fmt.Sprintf("should never happen: %s", event.Kind))
		}
	}
}

func (replayer *replayer) emit(op arch.Operation) {
	if op.Kind == arch.NoOp {
		return
	}
	replayer.operations = append(replayer.operations, op)
}

func (replayer *replayer) record(event RegisterEvent) {
	replayer.events = append(replayer.events, event)
}

func (replayer *replayer) holds(register arch.RegisterName, value uint16) bool {
	content, ok := replayer.file.Value(register)
	return ok && content == value
}

func (replayer *replayer) syncStack() {
	if !replayer.stackStale {
		return
	}

	registers := replayer.registers()
	replayer.emit(
		arch.NewCopyRegisterOp(registers.StackPointer, registers.Cursor))
	replayer.stackStale = false
}

func (replayer *replayer) syncCursor() {
	if replayer.cursorInHL {
		return
	}

	registers := replayer.registers()
	replayer.emit(arch.NewLoadImmediateOp(registers.Cursor, 0))
	replayer.emit(arch.NewAddOp(registers.Cursor, registers.StackPointer))
	replayer.file.Forget(registers.Cursor)
	replayer.cursorInHL = true
}

func (replayer *replayer) selectWordRegister(
	now allocator.Time,
	value uint16,
) (
	arch.RegisterName,
	RegisterEventKind,
) {
	registers := replayer.registers()

	if replayer.auxiliary != nil {
		allocation, ok := replayer.auxiliary.Take(now)
		if ok {
			if allocation.Value != value {
				panic(fmt.Sprintf(
					"should never happen: auxiliary allocation %s at %#x",
					allocation,
					value))
			}
			return registers.Auxiliary, LoadEvent
		}
	}

	if replayer.holds(registers.Auxiliary, value) {
		return registers.Auxiliary, ReuseEvent
	}

	if replayer.plan != nil {
		allocation, ok := replayer.plan.Take(now)
		if ok {
			if allocation.Value != value {
				panic(fmt.Sprintf(
					"should never happen: planned allocation %s at %#x",
					allocation,
					value))
			}
			return allocation.Register, LoadEvent
		}

		for _, register := range replayer.planRegisters {
			if replayer.holds(register, value) {
				return register, ReuseEvent
			}
		}

		panic(fmt.Sprintf("should never happen: %#x not resident at %d", value, now))
	}

	for _, register := range registers.General {
		if replayer.holds(register, value) {
			return register, ReuseEvent
		}
	}

	register := allocator.SelectEviction(
		replayer.WordPriorities,
		now,
		value,
		registers.General,
		replayer.file.Value)
	return register, LoadEvent
}

func (replayer *replayer) word(now allocator.Time, value uint16) {
	if replayer.Direction != serializer.RightToLeft {
		panic("should never happen: words require right to left writes")
	}

	register, kind := replayer.selectWordRegister(now, value)
	replayer.record(RegisterEvent{
		Kind:     kind,
		Time:     now,
		ByteSize: 2,
		Register: register,
		Value:    value,
	})

	replayer.syncStack()
	if kind == LoadEvent {
		replayer.emit(replayer.file.Load(register, value))
	}
	replayer.emit(arch.NewPushOp(register))

	// The push moved the stack pointer past HL's cursor.
	replayer.cursorInHL = false
}

func (replayer *replayer) selectByteSource(
	now allocator.Time,
	value uint8,
) RegisterEvent {
	registers := replayer.registers()
	event := RegisterEvent{
		Time:     now,
		ByteSize: 1,
		Value:    uint16(value),
	}

	// A pending accumulator allocation loads A even when a general register
	// half holds the value.
	if replayer.accumulator != nil {
		allocation, ok := replayer.accumulator.Take(now)
		if ok {
			if allocation.Value != value {
				panic(fmt.Sprintf(
					"should never happen: accumulator allocation %s at %#x",
					allocation,
					value))
			}

			event.Kind = LoadEvent
			event.Register = registers.Accumulator
			return event
		}
	}

	for _, register := range registers.ByteRegisters() {
		if replayer.holds(register, uint16(value)) {
			event.Kind = ReuseEvent
			event.Register = register
			return event
		}
	}

	if replayer.holds(registers.Accumulator, uint16(value)) {
		event.Kind = ReuseEvent
		event.Register = registers.Accumulator
		return event
	}

	event.Kind = UseConstantEvent
	return event
}

func (replayer *replayer) byte(now allocator.Time, value uint8) {
	event := replayer.selectByteSource(now, value)
	replayer.record(event)

	if event.Kind == LoadEvent {
		replayer.emit(replayer.file.Load(event.Register, event.Value))
	}

	source := arch.NewImmediate8Operand(value)
	if event.Kind != UseConstantEvent {
		source = arch.NewDirectOperand(event.Register)
	}

	cursor := replayer.registers().Cursor
	replayer.syncCursor()

	store := arch.NewLoadOp(arch.NewIndirectOperand(cursor), source)
	if replayer.Direction == serializer.RightToLeft {
		replayer.emit(arch.NewDecrementOp(cursor))
		replayer.emit(store)
	} else {
		replayer.emit(store)
		replayer.emit(arch.NewIncrementOp(cursor))
	}

	replayer.stackStale = true
}

func (replayer *replayer) move(delta int) {
	registers := replayer.registers()

	replayer.syncStack()
	replayer.emit(replayer.file.Load(registers.Cursor, uint16(delta)))
	replayer.emit(arch.NewAddOp(registers.Cursor, registers.StackPointer))
	replayer.emit(
		arch.NewCopyRegisterOp(registers.StackPointer, registers.Cursor))

	replayer.file.Forget(registers.Cursor)
	replayer.cursorInHL = true
	replayer.stackStale = false
}
