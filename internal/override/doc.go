// Package override verifies override contracts on classes built with the
// class package and reconciles partially redefined properties.
//
// A method is marked with Mark when it claims to override a member of an
// ancestor. Once every member of a class is defined, VerifyClass resolves the
// authoritative ancestor under the active resolution mode, checks that each
// marked method has a same-named counterpart there, and fills in any setter
// or deleter a redefined property left out, copying it from the ancestor's
// property of the same name.
//
// # Resolution Modes
//
//   - recent: the nearest ancestor (the direct superclass)
//   - topmost: the highest ancestor below the universal root
//
// The mode is an explicit value. A Verifier can carry one directly
// (WithMode), read it from a Registry (WithRegistry), or fall back to the
// package-level default registry managed by SetMode and GetMode.
//
// # Usage
//
//	base := class.New("Base").Define("save", class.Func(save))
//	child := class.New("Child", base).Define("save", override.Mark(childSave))
//
//	if _, err := override.VerifyClass(child); err != nil {
//		var verr *override.OverrideVerificationError
//		if errors.As(err, &verr) {
//			fmt.Println(verr.Members())
//		}
//	}
package override
