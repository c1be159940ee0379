// Package params holds the two field moduli of the MNT4-753/MNT6-753
// pairing-friendly cycle. The cycle property means there are only two
// primes total, not four: MNT4-753's base field is MNT6-753's scalar
// field, and MNT6-753's base field is MNT4-753's scalar field. Both
// curve packages import this one to build their Fq and Fr kernels from
// the right prime instead of re-declaring the literals.
package params

// Mnt4753BaseModulus is the MNT4-753 base field (Fq) modulus, and also
// the MNT6-753 scalar field (Fr) modulus, per the cycle's defining
// property. This is the published MNT4-753/MNT6-753 parameter (as used
// in the zexe/Celo-Plumo cycle and the libsnark/arkworks parameter
// tables); see DESIGN.md for provenance notes.
const Mnt4753BaseModulus = "41898490967918953402344214791240637128170709919953949071783502921025352812571106773058893763790338921418070971888253786114353726529584385201591605722013126468931404347949840543007986327743462853720628051692141265303114721689601"

// Mnt6753BaseModulus is the MNT6-753 base field (Fq) modulus, and also
// the MNT4-753 scalar field (Fr) modulus.
const Mnt6753BaseModulus = "41898490967918953402344214791240637128170709919953949071783502921025352812571106773058893763790338921418070971888458477323173057491593855069696241854796396165721416325350064441470418137846398469611935719059908164220784476160001"
